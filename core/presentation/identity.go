package presentation

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// identifiers tracks every UUID generated or observed in this process so a
// collision between freshly generated identifiers and ones carried over
// from decoded documents is impossible.
var identifiers = struct {
	sync.Mutex
	seen map[string]struct{}
}{seen: make(map[string]struct{})}

// NewIdentifier returns a fresh uppercase UUID string, unique among all
// identifiers this process has generated or recorded.
func NewIdentifier() string {
	identifiers.Lock()
	defer identifiers.Unlock()
	for {
		id := strings.ToUpper(uuid.NewString())
		if _, dup := identifiers.seen[id]; dup {
			continue
		}
		identifiers.seen[id] = struct{}{}
		return id
	}
}

// RecordIdentifier registers an identifier read from an existing document
// so NewIdentifier never reissues it.
func RecordIdentifier(id string) {
	if id == "" {
		return
	}
	identifiers.Lock()
	identifiers.seen[strings.ToUpper(id)] = struct{}{}
	identifiers.Unlock()
}

// RecordDocumentIdentifiers walks a document and records every identifier
// it carries. The codec calls this after a successful decode.
func RecordDocumentIdentifiers(doc *Document) {
	RecordIdentifier(doc.UUID)
	for _, cue := range doc.Cues {
		RecordIdentifier(cue.UUID)
		for _, act := range cue.Actions {
			RecordIdentifier(act.UUID)
			if act.Slide != nil && act.Slide.Slide != nil {
				recordSlideIdentifiers(act.Slide.Slide)
			}
			if act.Prop != nil {
				RecordIdentifier(act.Prop.UUID)
			}
		}
	}
	for _, cg := range doc.CueGroups {
		if cg.Group != nil {
			RecordIdentifier(cg.Group.UUID)
		}
	}
	for _, arr := range doc.Arrangements {
		RecordIdentifier(arr.UUID)
	}
}

func recordSlideIdentifiers(s *Slide) {
	RecordIdentifier(s.UUID)
	for _, el := range s.Elements {
		RecordIdentifier(el.UUID)
	}
}
