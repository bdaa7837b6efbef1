package pricing

import (
	"fmt"
	"strconv"
)

// Pace selects how many seconds of footage one generated frame covers.
type Pace string

const (
	PaceStandard Pace = "standard"
	PaceDynamic  Pace = "dynamic"
	PaceUltra    Pace = "ultra"
)

// halfSecondsPerFrame keeps the frame math in integers: ultra is 0.5s per frame.
var halfSecondsPerFrame = map[Pace]int{
	PaceStandard: 8,
	PaceDynamic:  4,
	PaceUltra:    1,
}

// Paces lists every pace in display order.
func Paces() []Pace {
	return []Pace{PaceStandard, PaceDynamic, PaceUltra}
}

func (p Pace) Valid() bool {
	_, ok := halfSecondsPerFrame[p]
	return ok
}

// SecondsPerFrame returns the footage length covered by one frame.
func (p Pace) SecondsPerFrame() float64 {
	return float64(p.halfSeconds()) / 2
}

func (p Pace) halfSeconds() int {
	hs, ok := halfSecondsPerFrame[p]
	if !ok {
		panic(fmt.Sprintf("pricing: unknown pace %q", string(p)))
	}
	return hs
}

// ParsePace validates a raw pace value coming from outside the engine.
func ParsePace(s string) (Pace, error) {
	p := Pace(s)
	if !p.Valid() {
		return "", fmt.Errorf("invalid pace %q", s)
	}
	return p, nil
}

// RevisionsTier is the number of included revision rounds.
type RevisionsTier int

const (
	Revisions2 RevisionsTier = 2
	Revisions4 RevisionsTier = 4
	Revisions8 RevisionsTier = 8
)

func RevisionsTiers() []RevisionsTier {
	return []RevisionsTier{Revisions2, Revisions4, Revisions8}
}

func (r RevisionsTier) Valid() bool {
	switch r {
	case Revisions2, Revisions4, Revisions8:
		return true
	}
	return false
}

func (r RevisionsTier) String() string {
	return strconv.Itoa(int(r))
}

func ParseRevisionsTier(s string) (RevisionsTier, error) {
	n, err := strconv.Atoi(s)
	if err != nil || !RevisionsTier(n).Valid() {
		return 0, fmt.Errorf("invalid revisions tier %q", s)
	}
	return RevisionsTier(n), nil
}

// NDATier is the confidentiality level requested by the client.
type NDATier string

const (
	NDANone    NDATier = "none"
	NDAPartial NDATier = "partial"
	NDAFull    NDATier = "full"
)

func NDATiers() []NDATier {
	return []NDATier{NDANone, NDAPartial, NDAFull}
}

func (n NDATier) Valid() bool {
	switch n {
	case NDANone, NDAPartial, NDAFull:
		return true
	}
	return false
}

func ParseNDATier(s string) (NDATier, error) {
	n := NDATier(s)
	if !n.Valid() {
		return "", fmt.Errorf("invalid nda tier %q", s)
	}
	return n, nil
}

// RushTier is the delivery window in days.
type RushTier int

const (
	Rush30 RushTier = 30
	Rush20 RushTier = 20
	Rush10 RushTier = 10
)

func RushTiers() []RushTier {
	return []RushTier{Rush30, Rush20, Rush10}
}

func (r RushTier) Valid() bool {
	switch r {
	case Rush30, Rush20, Rush10:
		return true
	}
	return false
}

func (r RushTier) String() string {
	return strconv.Itoa(int(r))
}

func ParseRushTier(s string) (RushTier, error) {
	n, err := strconv.Atoi(s)
	if err != nil || !RushTier(n).Valid() {
		return 0, fmt.Errorf("invalid rush tier %q", s)
	}
	return RushTier(n), nil
}
