package main

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/boltdb/bolt"
	"go.uber.org/zap"
)

type boltJournal struct {
	logger *zap.Logger
	client *bolt.DB
	config *BoltDBConfig
}

// GetBoltDBClient setup the database and the bucket then provides a ready to use client.
func GetBoltDBClient(config *Config) (*bolt.DB, error) {
	db, err := bolt.Open(config.BoltDB.FilePath, 0o600, &bolt.Options{Timeout: config.BoltDB.Timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open the database, %v", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, errB := tx.CreateBucketIfNotExists([]byte(config.BoltDB.BucketName)); errB != nil {
			return fmt.Errorf("failed to create %s bucket: %v", config.BoltDB.BucketName, errB)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set up bucket: %v", err)
	}
	return db, nil
}

// NewBoltJournal provides an instance of bolt-based event journal.
func NewBoltJournal(logger *zap.Logger, boltConfig *BoltDBConfig, client *bolt.DB) Journaler {
	return &boltJournal{
		logger: logger,
		client: client,
		config: boltConfig,
	}
}

// Close shuts down the bolt-based journal.
func (bj *boltJournal) Close() error {
	return bj.client.Close()
}

// Record appends an event under the next bucket sequence so that
// the cursor order is the recording order.
func (bj *boltJournal) Record(_ context.Context, event Event) error {
	eventBytes, err := event.ToJSON()
	if err != nil {
		return err
	}
	return bj.client.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bj.config.BucketName))
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)
		return b.Put(key, eventBytes)
	})
}

// Events retrieves every recorded event in recording order.
func (bj *boltJournal) Events(_ context.Context) ([]Event, error) {
	tx, err := bj.client.Begin(false)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	c := tx.Bucket([]byte(bj.config.BucketName)).Cursor()

	events := []Event{}
	for k, v := c.First(); k != nil; k, v = c.Next() {
		event, err := EventFromJSON(v)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}
