package codec

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"proflow/core/presentation"
)

// Encode serializes a document to container bytes. Known fields are
// emitted in canonical (field-number) order; unknown fields captured at
// decode time are re-emitted verbatim after them, so a document this
// package produced round-trips byte-identically.
func Encode(doc *presentation.Document) []byte {
	var b []byte
	b = protowire.AppendTag(b, fDocVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(doc.Version))
	b = appendUUID(b, fDocUUID, doc.UUID)
	b = appendString(b, fDocName, doc.Name)
	if doc.Application != nil {
		b = appendMessage(b, fDocApplication, encodeApplication(doc.Application))
	}
	for _, cue := range doc.Cues {
		b = appendMessage(b, fDocCue, encodeCue(cue))
	}
	for _, cg := range doc.CueGroups {
		b = appendMessage(b, fDocCueGroup, encodeCueGroup(cg))
	}
	for _, arr := range doc.Arrangements {
		b = appendMessage(b, fDocArrangement, encodeArrangement(arr))
	}
	b = appendUUID(b, fDocSelectedArrangement, doc.SelectedArrangement)
	b = appendString(b, fDocCategory, doc.Category)
	return appendUnknown(b, doc.Unknown)
}

func encodeApplication(app *presentation.ApplicationInfo) []byte {
	var b []byte
	b = appendVarint(b, fAppPlatform, uint64(app.Platform))
	if app.PlatformVersion != (presentation.Version{}) {
		b = appendMessage(b, fAppPlatformVersion, encodeVersion(app.PlatformVersion))
	}
	b = appendVarint(b, fAppApplication, uint64(app.Application))
	if app.ApplicationVersion != (presentation.Version{}) {
		b = appendMessage(b, fAppApplicationVersion, encodeVersion(app.ApplicationVersion))
	}
	return appendUnknown(b, app.Unknown)
}

func encodeVersion(v presentation.Version) []byte {
	var b []byte
	b = appendVarint(b, fVerMajor, uint64(v.Major))
	b = appendVarint(b, fVerMinor, uint64(v.Minor))
	b = appendVarint(b, fVerPatch, uint64(v.Patch))
	b = appendString(b, fVerBuild, v.Build)
	return b
}

func encodeCue(cue *presentation.Cue) []byte {
	var b []byte
	b = appendUUID(b, fCueUUID, cue.UUID)
	b = appendString(b, fCueName, cue.Name)
	for _, act := range cue.Actions {
		b = appendMessage(b, fCueAction, encodeAction(act))
	}
	b = appendBool(b, fCueIsEnabled, cue.IsEnabled)
	b = appendVarint(b, fCueCompletionTargetType, uint64(cue.CompletionTargetType))
	b = appendUUID(b, fCueCompletionTargetUUID, cue.CompletionTargetUUID)
	b = appendVarint(b, fCueCompletionActionType, uint64(cue.CompletionActionType))
	b = appendDouble(b, fCueCompletionTime, cue.CompletionTime)
	return appendUnknown(b, cue.Unknown)
}

func encodeAction(act *presentation.Action) []byte {
	var b []byte
	b = appendUUID(b, fActUUID, act.UUID)
	b = appendString(b, fActName, act.Name)
	b = appendVarint(b, fActType, uint64(act.Type))
	b = appendBool(b, fActIsEnabled, act.IsEnabled)
	b = appendDouble(b, fActDelayTime, act.DelayTime)
	b = appendDouble(b, fActDuration, act.Duration)
	if act.Slide != nil {
		b = appendMessage(b, fActSlide, encodePresentationSlide(act.Slide))
	}
	if act.Prop != nil {
		b = appendMessage(b, fActProp, encodePropSlide(act.Prop))
	}
	return appendUnknown(b, act.Unknown)
}

func encodePresentationSlide(ps *presentation.PresentationSlide) []byte {
	var b []byte
	b = appendString(b, fPSlideBackgroundRef, ps.BackgroundRef)
	b = appendString(b, fPSlideLayoutName, ps.LayoutName)
	if ps.Slide != nil {
		b = appendMessage(b, fPSlideSlide, encodeSlide(ps.Slide))
	}
	return appendUnknown(b, ps.Unknown)
}

func encodePropSlide(p *presentation.PropSlide) []byte {
	var b []byte
	b = appendUUID(b, fPropUUID, p.UUID)
	return appendUnknown(b, p.Unknown)
}

func encodeSlide(s *presentation.Slide) []byte {
	var b []byte
	b = appendUUID(b, fSlideUUID, s.UUID)
	if s.Size != (presentation.Size{}) {
		b = appendMessage(b, fSlideSize, encodeSize(s.Size))
	}
	b = appendBool(b, fSlideDrawsBackground, s.DrawsBackgroundColor)
	if s.BackgroundColor != nil {
		b = appendMessage(b, fSlideBackgroundColor, encodeColor(*s.BackgroundColor))
	}
	b = appendString(b, fSlideBackgroundMedia, s.BackgroundMedia)
	for _, el := range s.Elements {
		b = appendMessage(b, fSlideElement, encodeElement(el))
	}
	return appendUnknown(b, s.Unknown)
}

func encodeElement(el *presentation.Element) []byte {
	var b []byte
	b = appendUUID(b, fElemUUID, el.UUID)
	if el.Bounds != (presentation.Rect{}) {
		b = appendMessage(b, fElemBounds, encodeRect(el.Bounds))
	}
	if el.Text != nil {
		b = appendMessage(b, fElemText, encodeText(el.Text))
	}
	if el.Media != nil {
		b = appendMessage(b, fElemMedia, encodeMedia(el.Media))
	}
	return appendUnknown(b, el.Unknown)
}

func encodeText(t *presentation.TextElement) []byte {
	var b []byte
	if len(t.RTFData) > 0 {
		b = protowire.AppendTag(b, fTextRTFData, protowire.BytesType)
		b = protowire.AppendBytes(b, t.RTFData)
	}
	if !t.Font.IsZero() {
		b = appendMessage(b, fTextFont, encodeFont(t.Font))
	}
	if t.Color != (presentation.Color{}) {
		b = appendMessage(b, fTextColor, encodeColor(t.Color))
	}
	b = appendVarint(b, fTextAlignment, uint64(t.Alignment))
	if t.Shadow != nil {
		b = appendMessage(b, fTextShadow, encodeShadow(t.Shadow))
	}
	return appendUnknown(b, t.Unknown)
}

func encodeMedia(m *presentation.MediaElement) []byte {
	var b []byte
	b = appendString(b, fMediaURL, m.URL)
	b = appendVarint(b, fMediaFit, uint64(m.Fit))
	b = appendDouble(b, fMediaOpacity, m.Opacity)
	return appendUnknown(b, m.Unknown)
}

func encodeFont(f presentation.Font) []byte {
	var b []byte
	b = appendString(b, fFontName, f.Name)
	b = appendDouble(b, fFontSize, f.Size)
	b = appendBool(b, fFontBold, f.Bold)
	b = appendBool(b, fFontItalic, f.Italic)
	b = appendString(b, fFontFamily, f.Family)
	b = appendString(b, fFontFace, f.Face)
	return appendUnknown(b, f.Unknown)
}

func encodeColor(c presentation.Color) []byte {
	var b []byte
	b = appendDouble(b, fColorRed, c.Red)
	b = appendDouble(b, fColorGreen, c.Green)
	b = appendDouble(b, fColorBlue, c.Blue)
	b = appendDouble(b, fColorAlpha, c.Alpha)
	return b
}

func encodeSize(s presentation.Size) []byte {
	var b []byte
	b = appendDouble(b, fSizeWidth, s.Width)
	b = appendDouble(b, fSizeHeight, s.Height)
	return b
}

func encodePoint(p presentation.Point) []byte {
	var b []byte
	b = appendDouble(b, fPointX, p.X)
	b = appendDouble(b, fPointY, p.Y)
	return b
}

func encodeRect(r presentation.Rect) []byte {
	var b []byte
	if r.Origin != (presentation.Point{}) {
		b = appendMessage(b, fRectOrigin, encodePoint(r.Origin))
	}
	if r.Size != (presentation.Size{}) {
		b = appendMessage(b, fRectSize, encodeSize(r.Size))
	}
	return b
}

func encodeShadow(s *presentation.Shadow) []byte {
	var b []byte
	if s.Color != (presentation.Color{}) {
		b = appendMessage(b, fShadowColor, encodeColor(s.Color))
	}
	b = appendDouble(b, fShadowRadius, s.Radius)
	if s.Offset != (presentation.Point{}) {
		b = appendMessage(b, fShadowOffset, encodePoint(s.Offset))
	}
	b = appendDouble(b, fShadowOpacity, s.Opacity)
	b = appendDouble(b, fShadowAngle, s.Angle)
	b = appendBool(b, fShadowEnabled, s.Enabled)
	return appendUnknown(b, s.Unknown)
}

func encodeGroup(g *presentation.Group) []byte {
	var b []byte
	b = appendUUID(b, fGroupUUID, g.UUID)
	b = appendString(b, fGroupName, g.Name)
	if g.Color != (presentation.Color{}) {
		b = appendMessage(b, fGroupColor, encodeColor(g.Color))
	}
	b = appendString(b, fGroupAppID, g.ApplicationGroupID)
	b = appendString(b, fGroupAppName, g.ApplicationGroupName)
	return appendUnknown(b, g.Unknown)
}

func encodeCueGroup(cg *presentation.CueGroup) []byte {
	var b []byte
	if cg.Group != nil {
		b = appendMessage(b, fCueGroupGroup, encodeGroup(cg.Group))
	}
	for _, id := range cg.CueIdentifiers {
		b = appendUUID(b, fCueGroupCue, id)
	}
	return appendUnknown(b, cg.Unknown)
}

func encodeArrangement(arr *presentation.Arrangement) []byte {
	var b []byte
	b = appendUUID(b, fArrUUID, arr.UUID)
	b = appendString(b, fArrName, arr.Name)
	for _, id := range arr.GroupIdentifiers {
		b = appendUUID(b, fArrGroup, id)
	}
	return appendUnknown(b, arr.Unknown)
}

// Wire-level append helpers. Zero values are omitted, matching how the
// consuming application writes its own files.

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, 1)
}

func appendDouble(b []byte, num protowire.Number, v float64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, math.Float64bits(v))
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendMessage(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

// appendUUID writes the uuid wrapper message, omitted when empty.
func appendUUID(b []byte, num protowire.Number, id string) []byte {
	if id == "" {
		return b
	}
	var inner []byte
	inner = protowire.AppendTag(inner, fUUIDString, protowire.BytesType)
	inner = protowire.AppendString(inner, id)
	return appendMessage(b, num, inner)
}

// appendUnknown re-emits captured unrecognized fields verbatim, after the
// known fields of the enclosing message.
func appendUnknown(b []byte, u presentation.UnknownFields) []byte {
	for _, f := range u {
		b = append(b, f.Raw...)
	}
	return b
}
