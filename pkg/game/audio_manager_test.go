package game

import (
	"encoding/binary"
	"testing"
)

// TestSynthesizeTone 测试合成音的格式
func TestSynthesizeTone(t *testing.T) {
	pcm := SynthesizeTone(48000, 440, 0.01)

	// 480 个采样，每个采样双声道 16 位
	if len(pcm) != 480*4 {
		t.Fatalf("PCM length = %d, want %d", len(pcm), 480*4)
	}

	if first := int16(binary.LittleEndian.Uint16(pcm[0:])); first != 0 {
		t.Errorf("First sample = %d, want 0 (sin(0))", first)
	}

	for i := 0; i < len(pcm); i += 4 {
		left := binary.LittleEndian.Uint16(pcm[i:])
		right := binary.LittleEndian.Uint16(pcm[i+2:])
		if left != right {
			t.Fatalf("Sample %d: left/right differ", i/4)
		}
	}
}

// TestSynthesizeTone_Empty 测试时长为 0 时返回空
func TestSynthesizeTone_Empty(t *testing.T) {
	if pcm := SynthesizeTone(48000, 440, 0); pcm != nil {
		t.Errorf("Expected nil PCM, got %d bytes", len(pcm))
	}
}

// TestAudioManager_Silent 测试没有音频上下文时静音
func TestAudioManager_Silent(t *testing.T) {
	am := NewAudioManager(nil, NewHintSettingsManager(nil))
	if am.PlayCue(CueHintStart) {
		t.Error("PlayCue() without an audio context should return false")
	}
	if v := am.getSoundVolume(); v != 0.8 {
		t.Errorf("Default volume = %v, want 0.8", v)
	}
}

// TestHintSettings_SoundVolumeClamp 测试音量限制
func TestHintSettings_SoundVolumeClamp(t *testing.T) {
	sm := NewHintSettingsManager(nil)

	sm.SetSoundVolume(1.5)
	if sm.GetSettings().SoundVolume != 1 {
		t.Errorf("Volume = %v, want 1", sm.GetSettings().SoundVolume)
	}
	sm.SetSoundVolume(-0.5)
	if sm.GetSettings().SoundVolume != 0 {
		t.Errorf("Volume = %v, want 0", sm.GetSettings().SoundVolume)
	}
}
