package presentation

import (
	"proflow/core/errors"
	"proflow/core/rtf"
)

// CloneSlide deep-copies a slide, regenerating every identifier. All style
// state, geometry, element order, and unknown fields survive unchanged.
func CloneSlide(src *Slide) *Slide {
	if src == nil {
		return nil
	}
	dst := &Slide{
		UUID:                 NewIdentifier(),
		Size:                 src.Size,
		DrawsBackgroundColor: src.DrawsBackgroundColor,
		BackgroundMedia:      src.BackgroundMedia,
		Unknown:              src.Unknown.Clone(),
	}
	if src.BackgroundColor != nil {
		c := *src.BackgroundColor
		dst.BackgroundColor = &c
	}
	dst.Elements = make([]*Element, len(src.Elements))
	for i, el := range src.Elements {
		dst.Elements[i] = cloneElement(el)
	}
	return dst
}

// ClonePresentationSlide deep-copies the typed-slide wrapper and its slide.
func ClonePresentationSlide(src *PresentationSlide) *PresentationSlide {
	if src == nil {
		return nil
	}
	return &PresentationSlide{
		BackgroundRef: src.BackgroundRef,
		LayoutName:    src.LayoutName,
		Slide:         CloneSlide(src.Slide),
		Unknown:       src.Unknown.Clone(),
	}
}

func cloneElement(src *Element) *Element {
	dst := &Element{
		UUID:    NewIdentifier(),
		Bounds:  src.Bounds,
		Unknown: src.Unknown.Clone(),
	}
	if src.Text != nil {
		t := *src.Text
		t.RTFData = append([]byte(nil), src.Text.RTFData...)
		t.Unknown = src.Text.Unknown.Clone()
		t.Font.Unknown = src.Text.Font.Unknown.Clone()
		if src.Text.Shadow != nil {
			sh := *src.Text.Shadow
			sh.Unknown = src.Text.Shadow.Unknown.Clone()
			t.Shadow = &sh
		}
		dst.Text = &t
	}
	if src.Media != nil {
		m := *src.Media
		m.Unknown = src.Media.Unknown.Clone()
		dst.Media = &m
	}
	return dst
}

// CloneSlideWithText clones a template slide and replaces the rich-text
// payload of its text elements, in document order, with the given run
// lists. Only the RTF data changes; fonts, colors, shadows, bounds, and
// every other style attribute come from the template. Text elements beyond
// len(texts) keep their template content.
func CloneSlideWithText(src *Slide, texts [][]rtf.Run, opts rtf.Options) (*Slide, error) {
	dst := CloneSlide(src)
	next := 0
	for _, el := range dst.Elements {
		if next >= len(texts) {
			break
		}
		if !el.IsText() {
			continue
		}
		el.Text.RTFData = rtf.Encode(texts[next], opts)
		next++
	}
	if next < len(texts) {
		return nil, errors.Wrapf(errors.ErrContentOverflow, "%d text payloads for %d text elements", len(texts), next)
	}
	return dst, nil
}
