package pairing

// UserRef is the stable integer surrogate identity of the external
// collaborator's user — the only thing the engine ever stores about a
// user. It never carries a foreign key and the engine never dereferences
// it.
type UserRef int64

// CodeRange is a closed interval [Left, Right] of currently unassigned
// codes within a family. A family's free space is always the union of its
// CodeRange rows; no two rows ever overlap or touch (touching ranges are
// merged into one row by the engine as soon as it notices).
type CodeRange struct {
	ID     int64
	Left   int32
	Right  int32
	Family string
}

// TakenCode is a single code currently assigned to a user.
type TakenCode struct {
	ID           int64
	AppUserID    int64
	Val          int32
	CreationTime int64
	Family       string
}
