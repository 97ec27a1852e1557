package entity

// Facing is the sprite shown for the player. The zero value is idle.
type Facing int

const (
	FacingIdle Facing = iota
	FacingLeft1
	FacingLeft2
	FacingRight1
	FacingRight2

	facingCount
)

var facingNames = [facingCount]string{"idle", "left1", "left2", "right1", "right2"}

// Facings lists every facing in table order.
func Facings() []Facing {
	return []Facing{FacingIdle, FacingLeft1, FacingLeft2, FacingRight1, FacingRight2}
}

func (f Facing) valid() bool {
	return f >= 0 && f < facingCount
}

// String returns the sprite key for the facing.
func (f Facing) String() string {
	if !f.valid() {
		return facingNames[FacingIdle]
	}
	return facingNames[f]
}

// SpriteTable maps every facing to a value. Lookup cannot miss.
type SpriteTable[T any] [facingCount]T

// Get returns the entry for f. Out-of-range facings read as idle.
func (t *SpriteTable[T]) Get(f Facing) T {
	if !f.valid() {
		f = FacingIdle
	}
	return t[f]
}

// Set stores the entry for f.
func (t *SpriteTable[T]) Set(f Facing, v T) {
	if f.valid() {
		t[f] = v
	}
}
