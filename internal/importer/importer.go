// Package importer turns uploaded CSV files into stored transactions.
package importer

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultMaxSize is the largest file accepted for import.
const DefaultMaxSize int64 = 10 << 20

var (
	ErrInvalidFile    = errors.New("invalid file")
	ErrInvalidMapping = errors.New("invalid column mapping")
	ErrReadFailure    = errors.New("error reading file")
	ErrEmptyInput     = errors.New("no data to import")
	ErrNoValidRows    = errors.New("no valid transactions found in the CSV file")
)

// FileError explains why a file was rejected. It matches ErrInvalidFile.
type FileError struct {
	Reason   string
	TooLarge bool
}

func (e *FileError) Error() string {
	return "invalid file: " + e.Reason
}

func (e *FileError) Is(target error) bool {
	return target == ErrInvalidFile
}

func tooLarge(maxSize int64) error {
	return &FileError{Reason: fmt.Sprintf("File size exceeds %dMB limit.", maxSize>>20), TooLarge: true}
}

// File describes an upload before any of it is read.
type File struct {
	Name        string
	ContentType string
	Size        int64
}

// Mapping holds the zero-based column of each field.
type Mapping struct {
	Date        int `json:"date"`
	Description int `json:"description"`
	Amount      int `json:"amount"`
	Category    int `json:"category"`
}

// DefaultMapping is Date, Description, Amount, Category in that order. It is
// the zero Mapping when the file has fewer than four columns, leaving the
// choice to the user.
func DefaultMapping(columns int) Mapping {
	if columns >= 4 {
		return Mapping{Date: 0, Description: 1, Amount: 2, Category: 3}
	}

	return Mapping{}
}

func (m Mapping) Validate(columns int) error {
	for _, idx := range []int{m.Date, m.Description, m.Amount, m.Category} {
		if idx < 0 || (columns > 0 && idx >= columns) {
			return fmt.Errorf("%w: column %d is out of range", ErrInvalidMapping, idx+1)
		}
	}

	return nil
}

func (m Mapping) maxIndex() int {
	return max(m.Date, m.Description, m.Amount, m.Category)
}

// CheckFile rejects files that are not CSV by type or extension, or that exceed maxSize.
func CheckFile(f File, maxSize int64) error {
	if !isCSV(f) {
		return &FileError{Reason: "Please upload a valid CSV file."}
	}

	if maxSize > 0 && f.Size > maxSize {
		return tooLarge(maxSize)
	}

	return nil
}

func isCSV(f File) bool {
	if media, _, err := mime.ParseMediaType(f.ContentType); err == nil && media == "text/csv" {
		return true
	}

	return strings.EqualFold(filepath.Ext(f.Name), ".csv")
}

// OpenFile opens a local file for import and reports its sniffed content type.
func OpenFile(path string) (File, io.ReadCloser, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, nil, fmt.Errorf("%w: %w", ErrReadFailure, err)
	}

	if info.IsDir() {
		return File{}, nil, &FileError{Reason: path + " is a directory."}
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return File{}, nil, fmt.Errorf("%w: %w", ErrReadFailure, err)
	}

	fh, err := os.Open(path)
	if err != nil {
		return File{}, nil, fmt.Errorf("%w: %w", ErrReadFailure, err)
	}

	return File{Name: filepath.Base(path), ContentType: mt.String(), Size: info.Size()}, fh, nil
}
