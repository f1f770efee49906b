package services

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrDependencyUnmet is matched by every *DependencyUnmetError.
	ErrDependencyUnmet = errors.New("dependency unmet")
	// ErrLineIndexOutOfRange is returned by ReorderLine for invalid positions.
	ErrLineIndexOutOfRange = errors.New("line index out of range")
)

// DependencyUnmetError reports an attempt to quote a product before its
// prerequisite.
type DependencyUnmetError struct {
	ProductID    int64
	RequiredID   int64
	RequiredName string
}

func (e *DependencyUnmetError) Error() string {
	return fmt.Sprintf("Cannot add yet! Requires %q to be added first.", e.RequiredName)
}

// Is lets errors.Is(err, ErrDependencyUnmet) match.
func (e *DependencyUnmetError) Is(target error) bool {
	return target == ErrDependencyUnmet
}

// Customer identifies who the quote is addressed to.
type Customer struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// QuoteLine is one row of a quote: a copy of the product at the time it was
// added plus the quantity and line discount.
type QuoteLine struct {
	UID         string      `json:"uid"`
	ProductID   int64       `json:"id"`
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	Price       float64     `json:"price"`
	Description string      `json:"description"`
	PaymentType PaymentType `json:"paymentType"`
	Quantity    int         `json:"quantity"`
	Discount    float64     `json:"discount"`
}

// Draft is the serializable state of a Session.
type Draft struct {
	Customer             Customer    `json:"customer"`
	Lines                []QuoteLine `json:"lines"`
	HardwareDiscount     float64     `json:"hardwareDiscount"`
	SubscriptionDiscount float64     `json:"subscriptionDiscount"`
	TaxRate              float64     `json:"taxRate"`
	Notes                string      `json:"notes"`
}

// Session is the quote being edited. It is not safe for concurrent use; a
// session belongs to a single editor.
type Session struct {
	Customer             Customer
	HardwareDiscount     float64
	SubscriptionDiscount float64
	TaxRate              float64
	Notes                string

	lines []QuoteLine
	deps  DependencyTable
	newID func() string
}

// NewSession starts an empty quote using the defaults from settings.
func NewSession(deps DependencyTable, settings Settings) *Session {
	return &Session{
		HardwareDiscount:     settings.HardwareDiscount,
		SubscriptionDiscount: settings.SubscriptionDiscount,
		TaxRate:              settings.TaxRate,
		Notes:                settings.DefaultNotes,
		deps:                 deps,
		newID:                uuid.NewString,
	}
}

// RestoreSession rebuilds a session from a draft. The draft's lines are
// copied.
func RestoreSession(d Draft, deps DependencyTable) *Session {
	return &Session{
		Customer:             d.Customer,
		HardwareDiscount:     d.HardwareDiscount,
		SubscriptionDiscount: d.SubscriptionDiscount,
		TaxRate:              d.TaxRate,
		Notes:                d.Notes,
		lines:                cloneLines(d.Lines),
		deps:                 deps,
		newID:                uuid.NewString,
	}
}

// Draft returns a deep copy of the session state.
func (s *Session) Draft() Draft {
	return Draft{
		Customer:             s.Customer,
		Lines:                cloneLines(s.lines),
		HardwareDiscount:     s.HardwareDiscount,
		SubscriptionDiscount: s.SubscriptionDiscount,
		TaxRate:              s.TaxRate,
		Notes:                s.Notes,
	}
}

// Lines returns a copy of the lines in display order.
func (s *Session) Lines() []QuoteLine {
	return cloneLines(s.lines)
}

// Len returns the number of lines.
func (s *Session) Len() int {
	return len(s.lines)
}

// Dependencies returns the rule table the session checks against.
func (s *Session) Dependencies() DependencyTable {
	return s.deps
}

// IsLocked reports whether productID cannot be added yet because its
// prerequisite is not on the quote.
func (s *Session) IsLocked(productID int64) bool {
	rule, ok := s.deps.Rule(productID)
	if !ok {
		return false
	}
	return s.indexOfProduct(rule.RequiredID) < 0
}

// LockReason returns the rule keeping productID locked, if it is locked.
func (s *Session) LockReason(productID int64) (DependencyRule, bool) {
	if !s.IsLocked(productID) {
		return DependencyRule{}, false
	}
	return s.deps.Rule(productID)
}

// AddToQuote adds one unit of p. A product already on the quote has its
// quantity incremented instead of getting a second line. Only the direct
// prerequisite is checked.
func (s *Session) AddToQuote(p Product) (QuoteLine, error) {
	if s.IsLocked(p.ID) {
		rule, _ := s.deps.Rule(p.ID)
		return QuoteLine{}, &DependencyUnmetError{
			ProductID:    p.ID,
			RequiredID:   rule.RequiredID,
			RequiredName: rule.RequiredName,
		}
	}

	if i := s.indexOfProduct(p.ID); i >= 0 {
		s.lines[i].Quantity++
		return s.lines[i], nil
	}

	line := QuoteLine{
		UID:         s.newID(),
		ProductID:   p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Price:       p.Price,
		Description: p.Description,
		PaymentType: p.PaymentType.Normalize(),
		Quantity:    1,
	}
	s.lines = append(s.lines, line)
	return line, nil
}

// SetQuantity sets a line's quantity from user input. Input that is not a
// number, or is outside the int32 range, becomes 0; fractions are truncated.
// Returns false if uid is unknown.
func (s *Session) SetQuantity(uid, raw string) bool {
	i := s.indexOfLine(uid)
	if i < 0 {
		return false
	}
	s.lines[i].Quantity = parseQuantity(raw)
	return true
}

func parseQuantity(raw string) int {
	q := math.Trunc(ParseNumeric(raw))
	if q < math.MinInt32 || q > math.MaxInt32 {
		return 0
	}
	return int(q)
}

// SetDiscount sets a line's discount percentage from user input. Input that
// is not a number becomes 0. The value is not clamped to 0-100.
func (s *Session) SetDiscount(uid, raw string) bool {
	i := s.indexOfLine(uid)
	if i < 0 {
		return false
	}
	s.lines[i].Discount = ParseNumeric(raw)
	return true
}

// RemoveLine deletes the line with uid. Returns false if it was not present.
func (s *Session) RemoveLine(uid string) bool {
	i := s.indexOfLine(uid)
	if i < 0 {
		return false
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	return true
}

// ReorderLine moves the line at from to position to.
func (s *Session) ReorderLine(from, to int) error {
	if from < 0 || from >= len(s.lines) || to < 0 || to >= len(s.lines) {
		return fmt.Errorf("%w: move %d to %d with %d lines", ErrLineIndexOutOfRange, from, to, len(s.lines))
	}
	if from == to {
		return nil
	}
	line := s.lines[from]
	s.lines = append(s.lines[:from], s.lines[from+1:]...)
	s.lines = append(s.lines[:to], append([]QuoteLine{line}, s.lines[to:]...)...)
	return nil
}

// Reset clears customer and lines, restoring defaults from settings.
func (s *Session) Reset(settings Settings) {
	*s = *NewSession(s.deps, settings)
}

// Totals prices the session.
func (s *Session) Totals() QuoteTotals {
	return ComputeQuoteTotals(s.lines, s.HardwareDiscount, s.SubscriptionDiscount, s.TaxRate)
}

// ItemCount is the sum of all line quantities.
func (s *Session) ItemCount() int {
	return countItems(s.lines)
}

func (s *Session) indexOfProduct(productID int64) int {
	for i, l := range s.lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

func (s *Session) indexOfLine(uid string) int {
	for i, l := range s.lines {
		if l.UID == uid {
			return i
		}
	}
	return -1
}

// ParseNumeric parses user-typed numbers, returning 0 for anything that is
// not a finite number.
func ParseNumeric(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func cloneLines(lines []QuoteLine) []QuoteLine {
	if lines == nil {
		return nil
	}
	out := make([]QuoteLine, len(lines))
	copy(out, lines)
	return out
}

func countItems(lines []QuoteLine) int {
	var n int
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}
