// Package codec serializes the presentation document tree to and from its
// binary container format. The format is protobuf wire encoding with a
// field schema recovered by inspecting files the consuming application
// writes; there is no published descriptor, so the field numbers live in
// this file and unrecognized fields are preserved as opaque bytes.
package codec

// Document envelope.
const (
	fDocVersion             = 1 // varint
	fDocUUID                = 2 // message (uuidString)
	fDocName                = 3 // string
	fDocApplication         = 4 // message
	fDocCue                 = 5 // repeated message
	fDocCueGroup            = 6 // repeated message
	fDocArrangement         = 7 // repeated message
	fDocSelectedArrangement = 8 // message (uuidString)
	fDocCategory            = 9 // string
)

// UUID wrapper message.
const (
	fUUIDString = 1 // string
)

// ApplicationInfo.
const (
	fAppPlatform           = 1 // varint
	fAppPlatformVersion    = 2 // message
	fAppApplication        = 3 // varint
	fAppApplicationVersion = 4 // message
)

// Version.
const (
	fVerMajor = 1 // varint
	fVerMinor = 2 // varint
	fVerPatch = 3 // varint
	fVerBuild = 4 // string
)

// Cue.
const (
	fCueUUID                 = 1 // message
	fCueName                 = 2 // string
	fCueAction               = 3 // repeated message
	fCueIsEnabled            = 4 // varint bool
	fCueCompletionTargetType = 5 // varint
	fCueCompletionTargetUUID = 6 // message
	fCueCompletionActionType = 7 // varint
	fCueCompletionTime       = 8 // double
)

// Action. The variant tag (field 3) and the payload fields (10, 11) are
// decoded together and cross-checked; disagreement is fatal.
const (
	fActUUID      = 1  // message
	fActName      = 2  // string
	fActType      = 3  // varint
	fActIsEnabled = 4  // varint bool
	fActDelayTime = 5  // double
	fActDuration  = 6  // double
	fActSlide     = 10 // message (presentation slide payload)
	fActProp      = 11 // message (prop slide payload)
)

// PresentationSlide payload.
const (
	fPSlideBackgroundRef = 1 // string
	fPSlideLayoutName    = 2 // string
	fPSlideSlide         = 3 // message
)

// PropSlide payload.
const (
	fPropUUID = 1 // message
)

// Slide canvas.
const (
	fSlideUUID            = 1 // message
	fSlideSize            = 2 // message
	fSlideDrawsBackground = 3 // varint bool
	fSlideBackgroundColor = 4 // message
	fSlideBackgroundMedia = 5 // string
	fSlideElement         = 6 // repeated message
)

// Element.
const (
	fElemUUID   = 1 // message
	fElemBounds = 2 // message
	fElemText   = 3 // message
	fElemMedia  = 4 // message
)

// TextElement.
const (
	fTextRTFData   = 1 // bytes
	fTextFont      = 2 // message
	fTextColor     = 3 // message
	fTextAlignment = 4 // varint
	fTextShadow    = 5 // message
)

// MediaElement.
const (
	fMediaURL     = 1 // string
	fMediaFit     = 2 // varint
	fMediaOpacity = 3 // double
)

// Font.
const (
	fFontName   = 1 // string
	fFontSize   = 2 // double
	fFontBold   = 3 // varint bool
	fFontItalic = 4 // varint bool
	fFontFamily = 5 // string
	fFontFace   = 6 // string
)

// Color.
const (
	fColorRed   = 1 // double
	fColorGreen = 2 // double
	fColorBlue  = 3 // double
	fColorAlpha = 4 // double
)

// Size.
const (
	fSizeWidth  = 1 // double
	fSizeHeight = 2 // double
)

// Point.
const (
	fPointX = 1 // double
	fPointY = 2 // double
)

// Rect.
const (
	fRectOrigin = 1 // message
	fRectSize   = 2 // message
)

// Shadow.
const (
	fShadowColor   = 1 // message
	fShadowRadius  = 2 // double
	fShadowOffset  = 3 // message
	fShadowOpacity = 4 // double
	fShadowAngle   = 5 // double
	fShadowEnabled = 6 // varint bool
)

// Group.
const (
	fGroupUUID    = 1 // message
	fGroupName    = 2 // string
	fGroupColor   = 3 // message
	fGroupAppID   = 4 // string
	fGroupAppName = 5 // string
)

// CueGroup.
const (
	fCueGroupGroup = 1 // message
	fCueGroupCue   = 2 // repeated message (uuidString)
)

// Arrangement.
const (
	fArrUUID  = 1 // message
	fArrName  = 2 // string
	fArrGroup = 3 // repeated message (uuidString)
)
