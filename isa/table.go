package isa

// OperandRole describes what a fixed operand position contributes to an
// instruction's def/use sets.
type OperandRole int

const (
	// RoleNone marks an operand that is not a plain register (an
	// immediate, a branch target, a shift amount, ...).
	RoleNone OperandRole = iota
	RoleDef
	RoleUse
	// RoleMem marks the memory operand of a load or store: imm(reg),
	// Symbol(reg), or a bare Symbol/numeric literal. The classifier
	// resolves it into defs/uses/category, not this table.
	RoleMem
)

// Spec is the per-mnemonic entry of the instruction model.
type Spec struct {
	Category Category
	Width    int // load/store width in bytes; 0 otherwise
	Roles    []OperandRole
	// ImplicitDefs/ImplicitUses name registers an instruction reads or
	// writes that never appear as a textual operand (jal's $ra, jalr's
	// default $ra). hi/lo are not listed: mult/div and mflo/mfhi are
	// tracked through their category instead.
	ImplicitDefs []string
	ImplicitUses []string
}

// table is the mnemonic -> capability lookup. Mnemonics not present here are
// classified CategoryOther with empty defs/uses (spec.md's conservative
// error policy for unrecognized instructions extends naturally to the ones
// this tool has no reason to special-case, e.g. syscall, break, fpu ops).
var table = map[string]Spec{
	// Arithmetic / logical, register-register.
	"add":  {Category: CategoryOther, Roles: []OperandRole{RoleDef, RoleUse, RoleUse}},
	"addu": {Category: CategoryOther, Roles: []OperandRole{RoleDef, RoleUse, RoleUse}},
	"sub":  {Category: CategoryOther, Roles: []OperandRole{RoleDef, RoleUse, RoleUse}},
	"subu": {Category: CategoryOther, Roles: []OperandRole{RoleDef, RoleUse, RoleUse}},
	"and":  {Category: CategoryOther, Roles: []OperandRole{RoleDef, RoleUse, RoleUse}},
	"or":   {Category: CategoryOther, Roles: []OperandRole{RoleDef, RoleUse, RoleUse}},
	"xor":  {Category: CategoryOther, Roles: []OperandRole{RoleDef, RoleUse, RoleUse}},
	"nor":  {Category: CategoryOther, Roles: []OperandRole{RoleDef, RoleUse, RoleUse}},
	"slt":  {Category: CategoryOther, Roles: []OperandRole{RoleDef, RoleUse, RoleUse}},
	"sltu": {Category: CategoryOther, Roles: []OperandRole{RoleDef, RoleUse, RoleUse}},

	// Arithmetic / logical, register-immediate.
	"addi":  {Category: CategoryOther, Roles: []OperandRole{RoleDef, RoleUse, RoleNone}},
	"addiu": {Category: CategoryOther, Roles: []OperandRole{RoleDef, RoleUse, RoleNone}},
	"andi":  {Category: CategoryOther, Roles: []OperandRole{RoleDef, RoleUse, RoleNone}},
	"ori":   {Category: CategoryOther, Roles: []OperandRole{RoleDef, RoleUse, RoleNone}},
	"xori":  {Category: CategoryOther, Roles: []OperandRole{RoleDef, RoleUse, RoleNone}},
	"slti":  {Category: CategoryOther, Roles: []OperandRole{RoleDef, RoleUse, RoleNone}},
	"sltiu": {Category: CategoryOther, Roles: []OperandRole{RoleDef, RoleUse, RoleNone}},
	"lui":   {Category: CategoryOther, Roles: []OperandRole{RoleDef, RoleNone}},

	// Shifts.
	"sll":  {Category: CategoryOther, Roles: []OperandRole{RoleDef, RoleUse, RoleNone}},
	"srl":  {Category: CategoryOther, Roles: []OperandRole{RoleDef, RoleUse, RoleNone}},
	"sra":  {Category: CategoryOther, Roles: []OperandRole{RoleDef, RoleUse, RoleNone}},
	"sllv": {Category: CategoryOther, Roles: []OperandRole{RoleDef, RoleUse, RoleUse}},
	"srlv": {Category: CategoryOther, Roles: []OperandRole{RoleDef, RoleUse, RoleUse}},
	"srav": {Category: CategoryOther, Roles: []OperandRole{RoleDef, RoleUse, RoleUse}},

	// Multiply/divide producers: write hi/lo, not a named operand.
	"mult":  {Category: CategoryMultDivProducer, Roles: []OperandRole{RoleUse, RoleUse}},
	"multu": {Category: CategoryMultDivProducer, Roles: []OperandRole{RoleUse, RoleUse}},
	"div":   {Category: CategoryMultDivProducer, Roles: []OperandRole{RoleUse, RoleUse}},
	"divu":  {Category: CategoryMultDivProducer, Roles: []OperandRole{RoleUse, RoleUse}},

	// hi/lo transfer.
	"mfhi": {Category: CategoryMfloMfhi, Roles: []OperandRole{RoleDef}},
	"mflo": {Category: CategoryMfloMfhi, Roles: []OperandRole{RoleDef}},
	"mthi": {Category: CategoryOther, Roles: []OperandRole{RoleUse}},
	"mtlo": {Category: CategoryOther, Roles: []OperandRole{RoleUse}},

	// Loads.
	"lb":  {Category: CategoryLoad, Width: 1, Roles: []OperandRole{RoleDef, RoleMem}},
	"lbu": {Category: CategoryLoad, Width: 1, Roles: []OperandRole{RoleDef, RoleMem}},
	"lh":  {Category: CategoryLoad, Width: 2, Roles: []OperandRole{RoleDef, RoleMem}},
	"lhu": {Category: CategoryLoad, Width: 2, Roles: []OperandRole{RoleDef, RoleMem}},
	"lw":  {Category: CategoryLoad, Width: 4, Roles: []OperandRole{RoleDef, RoleMem}},
	"lwl": {Category: CategoryLoad, Width: 4, Roles: []OperandRole{RoleDef, RoleMem}},
	"lwr": {Category: CategoryLoad, Width: 4, Roles: []OperandRole{RoleDef, RoleMem}},
	"lwc2": {Category: CategoryLoad, Width: 4, Roles: []OperandRole{RoleNone, RoleMem}},

	// Stores.
	"sb":  {Category: CategoryStore, Width: 1, Roles: []OperandRole{RoleUse, RoleMem}},
	"sh":  {Category: CategoryStore, Width: 2, Roles: []OperandRole{RoleUse, RoleMem}},
	"sw":  {Category: CategoryStore, Width: 4, Roles: []OperandRole{RoleUse, RoleMem}},
	"swl": {Category: CategoryStore, Width: 4, Roles: []OperandRole{RoleUse, RoleMem}},
	"swr": {Category: CategoryStore, Width: 4, Roles: []OperandRole{RoleUse, RoleMem}},
	"swc2": {Category: CategoryStore, Width: 4, Roles: []OperandRole{RoleNone, RoleMem}},

	// Pseudo move/load-immediate.
	"move": {Category: CategoryOther, Roles: []OperandRole{RoleDef, RoleUse}},
	"li":   {Category: CategoryOther, Roles: []OperandRole{RoleDef, RoleNone}},
	"la":   {Category: CategoryOther, Roles: []OperandRole{RoleDef, RoleNone}},

	// Branches and jumps.
	"beq":  {Category: CategoryBranchJump, Roles: []OperandRole{RoleUse, RoleUse, RoleNone}},
	"bne":  {Category: CategoryBranchJump, Roles: []OperandRole{RoleUse, RoleUse, RoleNone}},
	"blez": {Category: CategoryBranchJump, Roles: []OperandRole{RoleUse, RoleNone}},
	"bgtz": {Category: CategoryBranchJump, Roles: []OperandRole{RoleUse, RoleNone}},
	"bltz": {Category: CategoryBranchJump, Roles: []OperandRole{RoleUse, RoleNone}},
	"bgez": {Category: CategoryBranchJump, Roles: []OperandRole{RoleUse, RoleNone}},
	"beqz": {Category: CategoryBranchJump, Roles: []OperandRole{RoleUse, RoleNone}},
	"bnez": {Category: CategoryBranchJump, Roles: []OperandRole{RoleUse, RoleNone}},
	"b":    {Category: CategoryBranchJump, Roles: []OperandRole{RoleNone}},
	"j":    {Category: CategoryBranchJump, Roles: []OperandRole{RoleNone}},
	"jal":  {Category: CategoryBranchJump, Roles: []OperandRole{RoleNone}, ImplicitDefs: []string{"$ra"}},
	"jr":   {Category: CategoryBranchJump, Roles: []OperandRole{RoleUse}},
	"jalr": {Category: CategoryBranchJump, Roles: []OperandRole{RoleUse}, ImplicitDefs: []string{"$ra"}},

	"nop": {Category: CategoryOther, Roles: nil},
}

// Lookup returns the capability spec for mnemonic, if known.
func Lookup(mnemonic string) (Spec, bool) {
	s, ok := table[mnemonic]
	return s, ok
}

// IsLoad reports whether mnemonic is one of the load-family instructions,
// independent of how a particular occurrence of it was classified (a load
// of an unresolved symbol is still a load for the #APP look-back in R5).
func IsLoad(mnemonic string) bool {
	s, ok := table[mnemonic]
	return ok && s.Category == CategoryLoad
}

// IsStore reports whether mnemonic is one of the store-family instructions.
func IsStore(mnemonic string) bool {
	s, ok := table[mnemonic]
	return ok && s.Category == CategoryStore
}

// IsMemoryOp reports whether mnemonic addresses memory at all (load or
// store), which is what decides whether its second operand should be parsed
// as a memory operand.
func IsMemoryOp(mnemonic string) bool {
	return IsLoad(mnemonic) || IsStore(mnemonic)
}

// IsMultDivProducer reports whether mnemonic is mult/multu/div/divu.
func IsMultDivProducer(mnemonic string) bool {
	s, ok := table[mnemonic]
	return ok && s.Category == CategoryMultDivProducer
}

// IsMfloMfhi reports whether mnemonic is mflo or mfhi.
func IsMfloMfhi(mnemonic string) bool {
	return mnemonic == "mflo" || mnemonic == "mfhi"
}

// IsBranchOrJump reports whether mnemonic transfers control flow.
func IsBranchOrJump(mnemonic string) bool {
	s, ok := table[mnemonic]
	return ok && s.Category == CategoryBranchJump
}

// MemOperandIndex returns the operand position holding the memory operand
// for a load/store mnemonic, if any.
func MemOperandIndex(mnemonic string) (int, bool) {
	s, ok := table[mnemonic]
	if !ok {
		return 0, false
	}
	for i, role := range s.Roles {
		if role == RoleMem {
			return i, true
		}
	}
	return 0, false
}
