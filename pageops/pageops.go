// Package pageops records whole-page operations and drives the page-index
// remapping they impose on annotations.
package pageops

import (
	"errors"
	"fmt"
)

var (
	// ErrLastPage is returned when a delete would leave zero pages.
	ErrLastPage = errors.New("cannot delete the last remaining page")
	// ErrPageRange is returned for indices outside the live page range.
	ErrPageRange = errors.New("page index out of range")
)

// Op is a recorded page operation. The log is append-only: ops are never
// edited, reordered or coalesced, and export replays them in record order.
type Op interface {
	isOp()
}

// Rotate turns a page by a multiple of 90 degrees at export time. It does
// not touch annotations.
type Rotate struct {
	Page    int
	Degrees int
}

// Delete removes a page and every annotation on it.
type Delete struct {
	Page int
}

// Move reorders a page from one index to another.
type Move struct {
	From, To int
}

func (Rotate) isOp() {}
func (Delete) isOp() {}
func (Move) isOp()   {}

// Remapper is the slice of the annotation store the log needs: the index
// shifts that follow page deletes and moves.
type Remapper interface {
	RemovePageAnnotations(page int)
	RemapMove(from, to int)
}

// Log is the ordered record of page operations for one open document.
type Log struct {
	ops   []Op
	pages int
	store Remapper
}

// NewLog starts an empty log over a document with pageCount live pages.
func NewLog(pageCount int, store Remapper) *Log {
	return &Log{pages: pageCount, store: store}
}

// PageCount is the live page count after all recorded operations.
func (l *Log) PageCount() int { return l.pages }

// Operations returns the recorded ops in issuance order.
func (l *Log) Operations() []Op {
	return append([]Op(nil), l.ops...)
}

// Rotate records a rotation. Degrees must be a multiple of 90.
func (l *Log) Rotate(page, degrees int) error {
	if page < 0 || page >= l.pages {
		return fmt.Errorf("rotate page %d: %w", page, ErrPageRange)
	}
	if degrees%90 != 0 {
		return fmt.Errorf("rotate page %d: %d is not a multiple of 90", page, degrees)
	}
	l.ops = append(l.ops, Rotate{Page: page, Degrees: degrees})
	return nil
}

// Delete records a page deletion and remaps annotations. Deleting the only
// remaining page is refused.
func (l *Log) Delete(page int) error {
	if page < 0 || page >= l.pages {
		return fmt.Errorf("delete page %d: %w", page, ErrPageRange)
	}
	if l.pages <= 1 {
		return ErrLastPage
	}
	l.ops = append(l.ops, Delete{Page: page})
	l.pages--
	l.store.RemovePageAnnotations(page)
	return nil
}

// Move records a page reorder and remaps annotations. Out-of-range indices
// are rejected before anything is logged.
func (l *Log) Move(from, to int) error {
	if from < 0 || from >= l.pages {
		return fmt.Errorf("move page %d: %w", from, ErrPageRange)
	}
	if to < 0 || to >= l.pages {
		return fmt.Errorf("move page to %d: %w", to, ErrPageRange)
	}
	if from == to {
		return nil
	}
	l.ops = append(l.ops, Move{From: from, To: to})
	l.store.RemapMove(from, to)
	return nil
}
