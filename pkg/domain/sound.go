package domain

import "path"

// FileRef is a content-addressed pointer to a file stored next to the
// project: its slash-separated path relative to the project root plus the
// hex SHA-256 of its bytes. Two refs with the same Hash denote the same
// logical file even if reached through different paths.
type FileRef struct {
	Path string `json:"path" mapstructure:"path" yaml:"path"`
	Hash string `json:"hash" mapstructure:"hash" yaml:"hash"`
}

func (r FileRef) IsZero() bool {
	return r.Hash == "" && r.Path == ""
}

// Name returns the base name of the referenced file without extension.
func (r FileRef) Name() string {
	base := path.Base(r.Path)
	return base[:len(base)-len(path.Ext(base))]
}

// AudioFile is the in-memory record of an externally stored audio file.
// Decoding samples is the audio engine's job; the graph only tracks identity.
type AudioFile struct {
	Ref  FileRef
	Size int64
}

// SoundInstance places an audio file on an audio layer. Begin and End are
// frame times on the timeline, Offset is the number of frames skipped at the
// start of the clip.
type SoundInstance struct {
	Layer  Ptr[Layer]
	Audio  FileRef
	Begin  int32
	End    int32
	Offset int32
}

func (SoundInstance) Kind() Kind { return KindSound }

func NewSoundInstance(layer Ptr[Layer], audio FileRef) SoundInstance {
	return SoundInstance{
		Layer: layer,
		Audio: audio,
		End:   24,
	}
}

// Covers reports whether the instance is audible at frame t.
func (s SoundInstance) Covers(t int32) bool {
	return t >= s.Begin && t < s.End
}
