package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/markusressel/hydro2go/internal/calibration"
	"github.com/markusressel/hydro2go/internal/ui"
	bolt "go.etcd.io/bbolt"
)

const (
	BucketCalibration   = "calibration"
	BucketPumpTimeTable = "pumpTimeTable"

	keyWaterLevelModel = "waterLevel"
	keyFillPump        = "fillPump"
)

// ErrPersistence wraps I/O failures of the underlying stores. Missing data is reported as os.ErrNotExist.
var ErrPersistence = errors.New("persistence failure")

type Persistence interface {
	Init() error

	LoadCalibration() (calibration.Model, error)
	SaveCalibration(model calibration.Model) error
	DeleteCalibration() error

	LoadPumpTimeTable() (calibration.PumpTimeTable, error)
	SavePumpTimeTable(table calibration.PumpTimeTable) error
	DeletePumpTimeTable() error
}

type persistence struct {
	dbPath string
}

func NewPersistence(dbPath string) Persistence {
	p := &persistence{
		dbPath: dbPath,
	}
	return p
}

func (p persistence) Init() (err error) {
	// get parent path of dbPath
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		// create directory
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrPersistence, err)
		}
	}
	return nil
}

func (p persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return db, nil
}

// SaveCalibration saves the water level model
func (p persistence) SaveCalibration(model calibration.Model) error {
	return p.save(BucketCalibration, keyWaterLevelModel, model)
}

// LoadCalibration loads the water level model, os.ErrNotExist if there is none
func (p persistence) LoadCalibration() (calibration.Model, error) {
	var model calibration.Model
	err := p.load(BucketCalibration, keyWaterLevelModel, &model)
	return model, err
}

func (p persistence) DeleteCalibration() error {
	return p.delete(BucketCalibration, keyWaterLevelModel)
}

// SavePumpTimeTable saves the level -> cumulative fill time table of the fill pump
func (p persistence) SavePumpTimeTable(table calibration.PumpTimeTable) error {
	return p.save(BucketPumpTimeTable, keyFillPump, table)
}

func (p persistence) LoadPumpTimeTable() (calibration.PumpTimeTable, error) {
	var table calibration.PumpTimeTable
	err := p.load(BucketPumpTimeTable, keyFillPump, &table)
	if err != nil {
		return nil, err
	}
	return table, nil
}

func (p persistence) DeletePumpTimeTable() error {
	return p.delete(BucketPumpTimeTable, keyFillPump)
}

func (p persistence) save(bucket string, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucket))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		return b.Put([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

func (p persistence) load(bucket string, key string, target interface{}) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return os.ErrNotExist
		}
		v := b.Get([]byte(key))
		if v == nil {
			return os.ErrNotExist
		}

		err := json.Unmarshal(v, target)
		if err != nil {
			// if we cannot read the saved data, delete it
			ui.Warning("Unable to unmarshal saved %s data for %s: %v", bucket, key, err)
			err := b.Delete([]byte(key))
			if err != nil {
				ui.Error("Unable to delete corrupt data key %s: %v", key, err)
			}
			return os.ErrNotExist
		}

		return nil
	})
}

func (p persistence) delete(bucket string, key string) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			// no bucket yet
			return nil
		}
		v := b.Get([]byte(key))
		if v == nil {
			// no data for given key
			return nil
		}

		return b.Delete([]byte(key))
	})
}
