package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// SFX identifies a sound effect.
type SFX uint8

const (
	SFXGameStart SFX = iota
	SFXVictory
	SFXDefeat
	SFXRockHit
	SFXRootGrowth
	SFXBranchGrowth
	SFXResourcesHit

	numSFX
)

var sfxNames = [numSFX]string{
	SFXGameStart:    "game_start",
	SFXVictory:      "victory",
	SFXDefeat:       "defeat",
	SFXRockHit:      "rock_hit",
	SFXRootGrowth:   "root_growth",
	SFXBranchGrowth: "branch_growth",
	SFXResourcesHit: "resources_hit",
}

func (s SFX) String() string {
	if s < numSFX {
		return sfxNames[s]
	}
	return "unknown"
}

// SoundPlayer plays a sound effect immediately.
type SoundPlayer interface {
	PlayNow(s SFX)
}

// SoundQueue collects sound effects during an update. Each effect plays at
// most once per flush no matter how often it was queued.
type SoundQueue struct {
	pending [numSFX]bool
}

// Play queues a sound effect.
func (q *SoundQueue) Play(s SFX) {
	if s < numSFX {
		q.pending[s] = true
	}
}

// Pending reports whether s is queued.
func (q *SoundQueue) Pending(s SFX) bool {
	return s < numSFX && q.pending[s]
}

// Flush plays queued effects in enum order and clears the queue.
func (q *SoundQueue) Flush(p SoundPlayer) {
	for s := SFX(0); s < numSFX; s++ {
		if !q.pending[s] {
			continue
		}
		q.pending[s] = false
		if p != nil {
			p.PlayNow(s)
		}
	}
}

// RaylibSounds plays clips through the raylib audio device.
type RaylibSounds struct {
	sounds [numSFX]rl.Sound
	loaded [numSFX]bool
}

// NewRaylibSounds opens the audio device and loads clips keyed by effect name.
// Missing clips are logged and skipped.
func NewRaylibSounds(clips map[string]string) *RaylibSounds {
	rl.InitAudioDevice()
	r := &RaylibSounds{}
	for s := SFX(0); s < numSFX; s++ {
		path, ok := clips[s.String()]
		if !ok || path == "" {
			continue
		}
		snd := rl.LoadSound(path)
		if snd.FrameCount == 0 {
			slog.Warn("sound clip not loaded", "sfx", s.String(), "path", path)
			continue
		}
		r.sounds[s] = snd
		r.loaded[s] = true
	}
	return r
}

// PlayNow implements SoundPlayer.
func (r *RaylibSounds) PlayNow(s SFX) {
	if s >= numSFX || !r.loaded[s] {
		slog.Debug("no audio clip", "sfx", s.String())
		return
	}
	rl.PlaySound(r.sounds[s])
}

// Unload releases clips and closes the audio device.
func (r *RaylibSounds) Unload() {
	for s := SFX(0); s < numSFX; s++ {
		if r.loaded[s] {
			rl.UnloadSound(r.sounds[s])
		}
	}
	rl.CloseAudioDevice()
}
