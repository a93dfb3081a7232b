package capture

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"github.com/celskeggs/uartsim/sim/model"
)

// Store persists decoded frames to a SQLite database, so that long simulation runs can be
// inspected and compared after the fact.
type Store struct {
	db *gorm.DB
}

// Open creates or opens the frame database at path using the pure Go SQLite driver.
func Open(path string) (*Store, error) {
	dialector := sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        path,
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := sqlDB.Exec(pragma); err != nil {
			return nil, err
		}
	}
	if err := db.AutoMigrate(&FrameRecord{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// SaveFrame records one completed frame on the named channel at the given virtual time.
func (s *Store) SaveFrame(at model.VirtualTime, channel string, data byte, frameError bool, parityError bool) error {
	return s.db.Create(&FrameRecord{
		Nanoseconds: at.Nanoseconds(),
		Channel:     channel,
		Data:        data,
		FrameError:  frameError,
		ParityError: parityError,
	}).Error
}

// Frames returns every recorded frame for the named channel in completion order.
func (s *Store) Frames(channel string) ([]FrameRecord, error) {
	var frames []FrameRecord
	err := s.db.Where("channel = ?", channel).
		Order("nanoseconds ASC, id ASC").
		Find(&frames).Error
	return frames, err
}

// ErrorCount returns how many recorded frames raised a frame or parity error.
func (s *Store) ErrorCount() (int64, error) {
	var count int64
	err := s.db.Model(&FrameRecord{}).
		Where("frame_error OR parity_error").
		Count(&count).Error
	return count, err
}

// Count returns the total number of recorded frames.
func (s *Store) Count() (int64, error) {
	var count int64
	err := s.db.Model(&FrameRecord{}).Count(&count).Error
	return count, err
}

func (s *Store) Health() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
