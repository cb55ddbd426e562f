// seehuhn.de/go/xmpmeta - Extensible Metadata Platform in Go
// Copyright (C) 2024  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package xmpmeta

import (
	"io"
	"sync/atomic"

	"go.uber.org/zap"
)

// A Session owns the lifetime of the trees created from it.
// After [Session.Close] has been called, all operations on the trees of the
// session fail with error code [BadObject].
//
// The namespace and alias registry is shared between all sessions.
type Session struct {
	log    *zap.Logger
	closed atomic.Bool
}

// An Option configures a [Session].
type Option func(*Session) error

// WithLogger sets the logger used by the session and its trees.
func WithLogger(log *zap.Logger) Option {
	return func(s *Session) error {
		if log != nil {
			s.log = log
		}
		return nil
	}
}

// WithStandardAliases registers the standard XMP aliases.
func WithStandardAliases() Option {
	return func(s *Session) error {
		return RegisterStandardAliases("")
	}
}

// NewSession starts a new session.
func NewSession(opts ...Option) (*Session, error) {
	s := &Session{log: zap.NewNop()}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, withOp("NewSession", err)
		}
	}
	s.log.Debug("session started")
	return s, nil
}

// Close ends the session.  Close can be called more than once.
func (s *Session) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	s.log.Debug("session closed")
	return nil
}

// Logger returns the logger of the session.
func (s *Session) Logger() *zap.Logger {
	return s.log
}

func (s *Session) check(op string) error {
	if s == nil || s.closed.Load() {
		return newError(BadObject, op, "session is closed")
	}
	return nil
}

// NewTree returns a new, empty tree.
func (s *Session) NewTree() (*Tree, error) {
	if err := s.check("NewTree"); err != nil {
		return nil, err
	}
	return &Tree{session: s}, nil
}

// Parse reads a complete serialized XMP packet from r.
func (s *Session) Parse(r io.Reader, flags ParseFlags) (*Tree, error) {
	const op = "Parse"
	t, err := s.NewTree()
	if err != nil {
		return nil, withOp(op, err)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &Error{Code: Unavailable, Op: op, Err: err}
	}
	err = t.ParseFromBuffer(data, flags&^ParseMoreBuffers)
	if err != nil {
		return nil, err
	}
	return t, nil
}
