// Package playback answers the audio mixer's one question: which sounds
// are audible at a given frame, and where inside each clip.
package playback

import (
	"github.com/aretw0/cipollino/pkg/domain"
	"github.com/aretw0/cipollino/pkg/project"
)

// Voice is one sound instance audible at the queried frame.
type Voice struct {
	Sound domain.Ptr[domain.SoundInstance]
	Audio domain.FileRef
	// Sample is the read position inside the audio file.
	Sample int64
}

// ActiveSounds lists the voices of graphic at frame. Only sounds on visible
// audio layers count; a hidden group mutes everything inside it.
func ActiveSounds(p *project.Project, graphic domain.Ptr[domain.Graphic], frame int32) []Voice {
	gfx, ok := p.Graphics.Get(graphic)
	if !ok {
		return nil
	}
	var voices []Voice
	for _, l := range gfx.Layers {
		voices = appendLayer(p, voices, l.Ptr(), frame, 0)
	}
	return voices
}

func appendLayer(p *project.Project, voices []Voice, l domain.Ptr[domain.Layer], frame int32, depth int) []Voice {
	layer, ok := p.Layers.Get(l)
	// Depth is bounded by the layer count on a healthy graph.
	if !ok || !layer.Show || depth > p.Layers.Len() {
		return voices
	}
	switch layer.Type {
	case domain.LayerAudio:
		for _, sb := range layer.Sounds {
			s, ok := p.Sounds.Get(sb.Ptr())
			if !ok || !s.Covers(frame) {
				continue
			}
			voices = append(voices, Voice{
				Sound:  sb.Ptr(),
				Audio:  s.Audio,
				Sample: SampleAt(p, frame-s.Begin+s.Offset),
			})
		}
	case domain.LayerGroup:
		for _, child := range layer.Layers {
			voices = appendLayer(p, voices, child.Ptr(), frame, depth+1)
		}
	}
	return voices
}

// SampleAt converts a clip-relative frame into a sample index.
func SampleAt(p *project.Project, frame int32) int64 {
	if frame < 0 || p.FPS <= 0 {
		return 0
	}
	return int64(float64(frame) * float64(p.SampleRate) / float64(p.FPS))
}
