// Package scripture parses human-entered scripture references ("Isaiah
// 32:15-17", "1 John 3:1-3 ESV", "Luke 2v1-20") into structured lookups
// for the bible text store.
package scripture

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"proflow/core/errors"
)

// Reference is one parsed scripture reference. VerseEnd equals VerseStart
// for a single verse; both are zero for a whole chapter.
type Reference struct {
	Book        string
	Chapter     int
	VerseStart  int
	VerseEnd    int
	Translation string
}

// String renders the reference the way it appears in cue and document
// names, e.g. "Isaiah 32:15-17 (ESV)".
func (r Reference) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d", r.Book, r.Chapter)
	if r.VerseStart > 0 {
		fmt.Fprintf(&b, ":%d", r.VerseStart)
		if r.VerseEnd > r.VerseStart {
			fmt.Fprintf(&b, "-%d", r.VerseEnd)
		}
	}
	if r.Translation != "" {
		fmt.Fprintf(&b, " (%s)", r.Translation)
	}
	return b.String()
}

// WholeChapter reports whether the reference names a chapter with no verse
// range.
func (r Reference) WholeChapter() bool { return r.VerseStart == 0 }

// Grammar AST. The lexer splits "2v1" into Int/Ident/Int, so the editor's
// "Luke 2v1-20" shorthand parses with the same rules as "Luke 2:1-20".

type referenceList struct {
	Refs []*referenceNode `@@ ( ( ";" | "," ) @@ )*`
}

type referenceNode struct {
	Ordinal     *int       `@Int?`
	Book        []string   `@Ident+`
	Chapter     int        `@Int`
	Range       *rangeNode `( ( ":" | "v" ) @@ )?`
	Translation *string    `( "(" ( @Translation | @Ident ) ")" | @Translation )?`
}

type rangeNode struct {
	Start int  `@Int`
	End   *int `( "-" @Int )?`
}

var referenceLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Translation markers are short all-caps runs (ESV, NIV, KJV2000 aside).
	{Name: "Translation", Pattern: `[A-Z]{2,6}\b`},
	{Name: "Ident", Pattern: `[A-Za-z][A-Za-z']*`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "Punct", Pattern: `[:;,()\-]`},
	{Name: "whitespace", Pattern: `\s+`},
})

var referenceParser = participle.MustBuild[referenceList](
	participle.Lexer(referenceLexer),
	participle.UseLookahead(4),
)

// Parse parses one or more references, separated by ";" or ",". A leading
// "Scripture:" prefix (the editor's section marker) is accepted and
// ignored. En dashes in ranges are treated as hyphens.
func Parse(input string) ([]Reference, error) {
	cleaned := strings.TrimSpace(input)
	for _, prefix := range []string{"scripture:", "Scripture:", "SCRIPTURE:"} {
		cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, prefix))
	}
	cleaned = strings.NewReplacer("–", "-", "—", "-").Replace(cleaned)
	if cleaned == "" {
		return nil, errors.NewParse("scripture reference", "", "empty reference")
	}

	ast, err := referenceParser.ParseString("", cleaned)
	if err != nil {
		return nil, errors.NewParse("scripture reference", "",
			fmt.Sprintf("cannot parse %q: %v", input, err))
	}

	var out []Reference
	for _, node := range ast.Refs {
		ref, err := node.resolve()
		if err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	return out, nil
}

func (n *referenceNode) resolve() (Reference, error) {
	ordinal := 0
	if n.Ordinal != nil {
		ordinal = *n.Ordinal
	}
	book, ok := CanonicalBook(ordinal, n.Book)
	if !ok {
		return Reference{}, errors.NewParse("scripture reference", "",
			fmt.Sprintf("unknown book %q", strings.Join(n.Book, " ")))
	}

	ref := Reference{Book: book, Chapter: n.Chapter}
	if n.Range != nil {
		ref.VerseStart = n.Range.Start
		ref.VerseEnd = n.Range.Start
		if n.Range.End != nil {
			ref.VerseEnd = *n.Range.End
		}
		if ref.VerseEnd < ref.VerseStart {
			return Reference{}, errors.NewParse("scripture reference", "",
				fmt.Sprintf("verse range %d-%d runs backwards", ref.VerseStart, ref.VerseEnd))
		}
	}
	if ref.Chapter < 1 {
		return Reference{}, errors.NewParse("scripture reference", "",
			fmt.Sprintf("chapter %d out of range", ref.Chapter))
	}
	if n.Translation != nil {
		ref.Translation = *n.Translation
	}
	return ref, nil
}
