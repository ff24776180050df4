package ports

// InitParams is the initialization record passed to the Scene Page's init
// entry point.
type InitParams struct {
	Width              int         `json:"width"`
	Height             int         `json:"height"`
	FPS                int         `json:"fps"`
	ServerPort         int         `json:"serverPort"`
	DurationFrames     int         `json:"durationFrames"`
	RenderID           int         `json:"renderId"` // the worker's partStart
	UserData           interface{} `json:"userData"`
	VideoComponentType string      `json:"videoComponentType"`
	ImageFormat        ImageFormat `json:"imageFormat"`
	JPEGQuality        int         `json:"jpegQuality"`
	Secret             string      `json:"secret"`
	DevMode            bool        `json:"devMode"`
}

// PageError is one error descriptor gathered during a render call.
type PageError struct {
	Message string `json:"message"`
}

// ScenePage documents the contract the pre-built scene page must expose
// after navigation. The Page Driver calls these methods directly;
// pkg/adapters/scenepage implements them by evaluating the page's
// JavaScript entry points through Page.Eval / Page.WaitPredicate.
type ScenePage interface {
	// Init calls the page's initialization entry with InitParams and
	// returns once the scene runtime is ready.
	Init(params InitParams) error

	// RenderFrame calls the page's render entry for frameIndex. After it
	// returns successfully the scene is rendering that frame.
	RenderFrame(frameIndex int) ([]PageError, error)

	// FontsReady reports the page's font-readiness predicate.
	FontsReady() (bool, error)

	// Settled reports the page's render-settled predicate: all
	// outstanding async rendering work the scene knows about has drained.
	Settled() (bool, error)

	// HasFrameMarker reports whether the DOM element encoding frameIndex
	// currently exists, signalling that the scene has rendered that frame.
	HasFrameMarker(frameIndex int) (bool, error)
}
