package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/cipollino/pkg/domain"
	"github.com/aretw0/cipollino/pkg/project"
)

// Descriptor is the content of proj.cip.
type Descriptor struct {
	FPS        float32          `json:"fps"`
	SampleRate float32          `json:"sample_rate"`
	AudioFiles []domain.FileRef `json:"audio_files"`
}

// DefaultDescriptor returns the settings used when proj.cip is missing.
func DefaultDescriptor() Descriptor {
	return Descriptor{
		FPS:        project.DefaultFPS,
		SampleRate: project.DefaultSampleRate,
	}
}

// parseDescriptor decodes proj.cip on top of the defaults. Non-positive
// settings fall back to the defaults as well.
func parseDescriptor(data []byte) (Descriptor, error) {
	d := DefaultDescriptor()
	if err := json.Unmarshal(data, &d); err != nil {
		return DefaultDescriptor(), fmt.Errorf("failed to parse descriptor: %w", err)
	}
	if d.FPS <= 0 {
		d.FPS = project.DefaultFPS
	}
	if d.SampleRate <= 0 {
		d.SampleRate = project.DefaultSampleRate
	}
	return d, nil
}

// describe builds the descriptor of p. References that were expected at
// load time but are still unresolved are kept so they are reported again
// next time instead of silently disappearing.
func describe(p *project.Project) Descriptor {
	d := Descriptor{FPS: p.FPS, SampleRate: p.SampleRate}
	seen := map[string]bool{}
	for _, ref := range p.AudioFiles.Refs() {
		seen[ref.Path] = true
		d.AudioFiles = append(d.AudioFiles, ref)
	}
	for _, ref := range p.AudioFiles.Expected() {
		if _, ok := p.AudioFiles.Resolve(ref); !ok && !seen[ref.Path] {
			d.AudioFiles = append(d.AudioFiles, ref)
		}
	}
	return d
}

func (d Descriptor) marshal() ([]byte, error) {
	if d.AudioFiles == nil {
		d.AudioFiles = []domain.FileRef{}
	}
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal descriptor: %w", err)
	}
	return data, nil
}
