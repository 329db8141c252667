package database

import (
	"bytes"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"golang.org/x/xerrors"
)

// ArchiveGame writes the final snapshot of a finished game to S3.
// Stacks without a bucket configured just skip it.
func (db *DB) ArchiveGame(id string, doc []byte) error {
	if db.s3 == nil {
		db.debugf("No archive bucket configured, skipping archive of %s", id)
		return nil
	}

	key := fmt.Sprintf("%s/games/%s.json", db.config.S3Folder, id)
	_, err := db.s3.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(db.config.S3Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(doc),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return xerrors.Errorf("archive %s: %w", id, err)
	}
	db.infof("Archived game %s to s3://%s/%s", id, db.config.S3Bucket, key)
	return nil
}
