package domain

// Image quality slider bounds
const (
	MinQuality     = 30
	MaxQuality     = 100
	QualityStep    = 10
	DefaultQuality = 80
)

// Settings holds the user's conversion choices for the current session
type Settings struct {
	FileInputID            FileTypeID          `json:"file_input_id" yaml:"file_input_id"`
	FileOutputID           FileTypeID          `json:"file_output_id" yaml:"file_output_id"`
	ImageQuality           int                 `json:"image_quality" yaml:"image_quality"`
	KnownUploadedFileTypes map[FileTypeID]bool `json:"known_uploaded_file_types" yaml:"known_uploaded_file_types"`
}

// DefaultSettings returns the settings used on first load
func DefaultSettings() Settings {
	return Settings{
		FileInputID:            FileTypeJPG,
		FileOutputID:           FileTypePNG,
		ImageQuality:           DefaultQuality,
		KnownUploadedFileTypes: map[FileTypeID]bool{},
	}
}

// Clone returns a deep copy so callers can't mutate shared maps
func (s Settings) Clone() Settings {
	known := make(map[FileTypeID]bool, len(s.KnownUploadedFileTypes))
	for id, seen := range s.KnownUploadedFileTypes {
		known[id] = seen
	}
	s.KnownUploadedFileTypes = known
	return s
}

// QualitySteps lists every selectable quality value, low to high
func QualitySteps() []int {
	steps := make([]int, 0, (MaxQuality-MinQuality)/QualityStep+1)
	for q := MinQuality; q <= MaxQuality; q += QualityStep {
		steps = append(steps, q)
	}
	return steps
}

// IsValidQuality reports whether q is one of the quality steps
func IsValidQuality(q int) bool {
	return q >= MinQuality && q <= MaxQuality && (q-MinQuality)%QualityStep == 0
}
