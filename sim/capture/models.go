package capture

// FrameRecord is one decoded frame observed on a line, keyed by the virtual time at which
// its capture completed.
type FrameRecord struct {
	ID          uint   `gorm:"primarykey"`
	Nanoseconds uint64 `gorm:"index;not null"`
	Channel     string `gorm:"index;size:40;not null"`
	Data        byte   `gorm:"not null"`
	FrameError  bool   `gorm:"not null"`
	ParityError bool   `gorm:"not null"`
}

func (FrameRecord) TableName() string {
	return "frames"
}

// Errored reports whether either error flag was raised for this frame.
func (f FrameRecord) Errored() bool {
	return f.FrameError || f.ParityError
}
