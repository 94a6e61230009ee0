package m3gfile

// Enumerant values used by mode and parameter fields.
const (
	ImageAntialias = 2
	ImageDither    = 4
	ImageTrueColor = 8
	ImageOverwrite = 16

	BackgroundBorder = 32
	BackgroundRepeat = 33

	ProjectionGeneric     = 48
	ProjectionParallel    = 49
	ProjectionPerspective = 50

	BlendAlpha      = 64
	BlendAlphaAdd   = 65
	BlendModulate   = 66
	BlendModulateX2 = 67
	BlendReplace    = 68

	FogExponential = 80
	FogLinear      = 81

	FormatAlpha          = 96
	FormatLuminance      = 97
	FormatLuminanceAlpha = 98
	FormatRGB            = 99
	FormatRGBA           = 100

	LightAmbient     = 128
	LightDirectional = 129
	LightOmni        = 130
	LightSpot        = 131

	AlignNone   = 144
	AlignOrigin = 145
	AlignXAxis  = 146
	AlignYAxis  = 147
	AlignZAxis  = 148

	CullBack  = 160
	CullFront = 161
	CullNone  = 162

	ShadeFlat   = 164
	ShadeSmooth = 165

	WindingCCW = 168
	WindingCW  = 169

	InterpolateLinear = 176
	InterpolateSlerp  = 177
	InterpolateSpline = 178
	InterpolateSquad  = 179
	InterpolateStep   = 180

	RepeatConstant = 192
	RepeatLoop     = 193

	FilterBaseLevel = 208
	FilterLinear    = 209
	FilterNearest   = 210

	FuncAdd      = 224
	FuncBlend    = 225
	FuncDecal    = 226
	FuncModulate = 227
	FuncReplace  = 228

	WrapClamp  = 240
	WrapRepeat = 241
)

// Animation target properties, used by AnimationTrack.PropertyID.
const (
	PropertyAlpha         = 256
	PropertyAmbientColor  = 257
	PropertyColor         = 258
	PropertyCrop          = 259
	PropertyDensity       = 260
	PropertyDiffuseColor  = 261
	PropertyEmissiveColor = 262
	PropertyFarDistance   = 263
	PropertyFieldOfView   = 264
	PropertyIntensity     = 265
	PropertyMorphWeights  = 266
	PropertyNearDistance  = 267
	PropertyOrientation   = 268
	PropertyPickability   = 269
	PropertyScale         = 270
	PropertyShininess     = 271
	PropertySpecularColor = 272
	PropertySpotAngle     = 273
	PropertySpotExponent  = 274
	PropertyTranslation   = 275
	PropertyVisibility    = 276
)

// Material color targets.
const (
	MaterialAmbient  = 1024
	MaterialDiffuse  = 2048
	MaterialEmissive = 4096
	MaterialSpecular = 8192
)

var constantStrings = map[uint32]string{
	ImageAntialias:        "ANTIALIAS",
	ImageDither:           "DITHER",
	ImageTrueColor:        "TRUE_COLOR",
	ImageOverwrite:        "OVERWRITE",
	BackgroundBorder:      "BORDER",
	BackgroundRepeat:      "REPEAT",
	ProjectionGeneric:     "GENERIC",
	ProjectionParallel:    "PARALLEL",
	ProjectionPerspective: "PERSPECTIVE",
	BlendAlpha:            "ALPHA",
	BlendAlphaAdd:         "ALPHA_ADD",
	BlendModulate:         "MODULATE",
	BlendModulateX2:       "MODULATE_X2",
	BlendReplace:          "REPLACE",
	FogExponential:        "EXPONENTIAL",
	FogLinear:             "LINEAR",
	FormatAlpha:           "ALPHA",
	FormatLuminance:       "LUMINANCE",
	FormatLuminanceAlpha:  "LUMINANCE_ALPHA",
	FormatRGB:             "RGB",
	FormatRGBA:            "RGBA",
	LightAmbient:          "AMBIENT",
	LightDirectional:      "DIRECTIONAL",
	LightOmni:             "OMNI",
	LightSpot:             "SPOT",
	AlignNone:             "NONE",
	AlignOrigin:           "ORIGIN",
	AlignXAxis:            "X_AXIS",
	AlignYAxis:            "Y_AXIS",
	AlignZAxis:            "Z_AXIS",
	CullBack:              "CULL_BACK",
	CullFront:             "CULL_FRONT",
	CullNone:              "CULL_NONE",
	ShadeFlat:             "SHADE_FLAT",
	ShadeSmooth:           "SHADE_SMOOTH",
	WindingCCW:            "WINDING_CCW",
	WindingCW:             "WINDING_CW",
	InterpolateLinear:     "LINEAR",
	InterpolateSlerp:      "SLERP",
	InterpolateSpline:     "SPLINE",
	InterpolateSquad:      "SQUAD",
	InterpolateStep:       "STEP",
	RepeatConstant:        "CONSTANT",
	RepeatLoop:            "LOOP",
	FilterBaseLevel:       "FILTER_BASE_LEVEL",
	FilterLinear:          "FILTER_LINEAR",
	FilterNearest:         "FILTER_NEAREST",
	FuncAdd:               "FUNC_ADD",
	FuncBlend:             "FUNC_BLEND",
	FuncDecal:             "FUNC_DECAL",
	FuncModulate:          "FUNC_MODULATE",
	FuncReplace:           "FUNC_REPLACE",
	WrapClamp:             "WRAP_CLAMP",
	WrapRepeat:            "WRAP_REPEAT",
	PropertyAlpha:         "ALPHA",
	PropertyAmbientColor:  "AMBIENT_COLOR",
	PropertyColor:         "COLOR",
	PropertyCrop:          "CROP",
	PropertyDensity:       "DENSITY",
	PropertyDiffuseColor:  "DIFFUSE_COLOR",
	PropertyEmissiveColor: "EMISSIVE_COLOR",
	PropertyFarDistance:   "FAR_DISTANCE",
	PropertyFieldOfView:   "FIELD_OF_VIEW",
	PropertyIntensity:     "INTENSITY",
	PropertyMorphWeights:  "MORPH_WEIGHTS",
	PropertyNearDistance:  "NEAR_DISTANCE",
	PropertyOrientation:   "ORIENTATION",
	PropertyPickability:   "PICKABILITY",
	PropertyScale:         "SCALE",
	PropertyShininess:     "SHININESS",
	PropertySpecularColor: "SPECULAR_COLOR",
	PropertySpotAngle:     "SPOT_ANGLE",
	PropertySpotExponent:  "SPOT_EXPONENT",
	PropertyTranslation:   "TRANSLATION",
	PropertyVisibility:    "VISIBILITY",
	MaterialAmbient:       "AMBIENT",
	MaterialDiffuse:       "DIFFUSE",
	MaterialEmissive:      "EMISSIVE",
	MaterialSpecular:      "SPECULAR",
}

// Constant returns the symbolic name of an enumerant value, or an empty
// string if the value has no name. Names are not unique; the same name may be
// used by enumerants of different fields.
func Constant(v uint32) string {
	return constantStrings[v]
}
