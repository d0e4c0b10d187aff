/*
 * Copyright (C) 2019-2025 Hedera Hashgraph, LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrDatabaseError      = errors.New("Database error")
	ErrEntityNotFound     = errors.New("Entity not found")
	ErrEntityTypeMismatch = errors.New("Entity type mismatch")
	ErrHashMismatch       = errors.New("Previous hash mismatch")
	ErrIllegalState       = errors.New("Illegal state")
	ErrInvalidEntityId    = errors.New("Invalid entity id")
	ErrNftNotFound        = errors.New("Nft not found")
	ErrRecordFileNotFound = errors.New("Record file not found")
	ErrUnknownAlias       = errors.New("Unknown alias")
)

// ParserError is a structural failure of a stream file. Retrying the file cannot succeed.
type ParserError struct {
	File  string
	cause error
}

func (e *ParserError) Error() string {
	return fmt.Sprintf("Error parsing file %s: %s", e.File, e.cause)
}

func (e *ParserError) Unwrap() error {
	return e.cause
}

func (e *ParserError) Cause() error {
	return e.cause
}

// NewParserError wraps cause as a ParserError for the named file
func NewParserError(file string, cause error) error {
	return &ParserError{File: file, cause: cause}
}

// NewParserErrorf creates a ParserError with a formatted message
func NewParserErrorf(file, format string, args ...interface{}) error {
	return &ParserError{File: file, cause: errors.Errorf(format, args...)}
}

// IsParseError reports whether err or any error it wraps is a ParserError
func IsParseError(err error) bool {
	var parserError *ParserError
	return errors.As(err, &parserError)
}

// NewTypeMismatch builds the illegal state error raised when a stored entity type differs from the expected one
func NewTypeMismatch(entityId string, expected, actual int16) error {
	return errors.Wrapf(ErrEntityTypeMismatch, "entity %s has type %d, expected %d", entityId, actual, expected)
}

// New returns an error with the message and a stack trace
func New(message string) error {
	return errors.New(message)
}

// Errorf returns an error with the formatted message and a stack trace
func Errorf(format string, args ...interface{}) error {
	return errors.Errorf(format, args...)
}

// Wrap annotates err with a message
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf annotates err with a formatted message
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}
