package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTranscription(); err != nil {
		return err
	}
	if err := c.validateDiarization(); err != nil {
		return err
	}
	if err := c.validateSubtitles(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTranscription() error {
	if c.Transcription.BeamSize <= 0 {
		return errors.New("transcription.beam_size must be positive")
	}
	return nil
}

func (c *Config) validateDiarization() error {
	d := c.Diarization
	if d.SpeakerCount < 0 {
		return errors.New("diarization.speaker_count must be >= 0")
	}
	if d.MinSpeakers < 0 {
		return errors.New("diarization.min_speakers must be >= 0")
	}
	if d.MaxSpeakers < 0 {
		return errors.New("diarization.max_speakers must be >= 0")
	}
	if d.SpeakerCount > 0 && (d.MinSpeakers > 0 || d.MaxSpeakers > 0) {
		return errors.New("diarization.speaker_count is mutually exclusive with diarization.min_speakers and diarization.max_speakers")
	}
	if d.MinSpeakers > 0 && d.MaxSpeakers > 0 && d.MinSpeakers > d.MaxSpeakers {
		return errors.New("diarization.min_speakers must not exceed diarization.max_speakers")
	}
	return nil
}

func (c *Config) validateSubtitles() error {
	if c.Subtitles.MaxWordsPerLine <= 0 {
		return errors.New("subtitles.max_words_per_line must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
}
