package whisper

// Config captures runtime settings for WhisperX operations.
type Config struct {
	// Model is the WhisperX model to use (e.g., "large-v3").
	Model string
	// Language is an ISO 639-1 hint; empty enables auto-detection.
	Language string
	// BeamSize controls decoder beam width.
	BeamSize int
	// ConditionOnPreviousText feeds prior context into the decoder.
	ConditionOnPreviousText bool
	// CUDAEnabled enables GPU acceleration.
	CUDAEnabled bool
	// CacheDir is the model download cache.
	CacheDir string
}

// WhisperX configuration constants.
const (
	DefaultModel    = "large-v3"
	DefaultBeamSize = 5
	CUDAIndexURL    = "https://download.pytorch.org/whl/cu128"
	PypiIndexURL    = "https://pypi.org/simple"
	BatchSize       = "4"
	OutputFormat    = "json"
	CPUDevice       = "cpu"
	CUDADevice      = "cuda"
	CPUComputeType  = "float32"
)

// Command names for external tools.
const (
	UVXCommand    = "uvx"
	FFmpegCommand = "ffmpeg"
)
