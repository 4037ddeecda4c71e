package game

import (
	"encoding/binary"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SoundCue 提示音效
type SoundCue int

const (
	// CueHintStart 提示开始时的提示音
	CueHintStart SoundCue = iota
	// CueHintEnd 提示结束时的提示音
	CueHintEnd
)

// AudioSampleRate 音频上下文采样率
const AudioSampleRate = 48000

// cueSpec 合成音效的参数
type cueSpec struct {
	freqs    []float64 // 依次播放的音高（Hz）
	duration float64   // 每个音的时长（秒）
}

var cueSpecs = map[SoundCue]cueSpec{
	CueHintStart: {freqs: []float64{660, 880}, duration: 0.08},
	CueHintEnd:   {freqs: []float64{880, 660}, duration: 0.06},
}

// AudioManager 音频管理器
// 职责：
//   - 合成并缓存提示音效（不依赖音频资源文件）
//   - 从 HintSettingsManager 读取音效开关和音量
type AudioManager struct {
	context         *audio.Context             // 可为 nil（无音频设备时静音）
	settingsManager *HintSettingsManager       // 可为 nil，使用默认音量
	players         map[SoundCue]*audio.Player // 音效播放器缓存
}

// NewAudioManager 创建音频管理器
//
// 参数：
//   - ctx: ebiten 音频上下文，可为 nil（静音模式）
//   - sm: 提示设置管理器，可为 nil
func NewAudioManager(ctx *audio.Context, sm *HintSettingsManager) *AudioManager {
	return &AudioManager{
		context:         ctx,
		settingsManager: sm,
		players:         make(map[SoundCue]*audio.Player),
	}
}

// PlayCue 播放提示音效
//
// 返回：
//   - bool: 是否成功播放（静音模式、音效关闭或未知音效时返回 false）
func (am *AudioManager) PlayCue(cue SoundCue) bool {
	if am.context == nil {
		return false
	}
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}

	player := am.getPlayer(cue)
	if player == nil {
		return false
	}

	player.SetVolume(am.getSoundVolume())
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind cue %d: %v", cue, err)
	}
	player.Play()
	return true
}

// getPlayer 获取或合成音效播放器
func (am *AudioManager) getPlayer(cue SoundCue) *audio.Player {
	if player, exists := am.players[cue]; exists {
		return player
	}

	spec, ok := cueSpecs[cue]
	if !ok {
		log.Printf("[AudioManager] Warning: Unknown sound cue %d", cue)
		return nil
	}

	var pcm []byte
	for _, freq := range spec.freqs {
		pcm = append(pcm, SynthesizeTone(AudioSampleRate, freq, spec.duration)...)
	}
	player := am.context.NewPlayerFromBytes(pcm)
	am.players[cue] = player
	return player
}

// getSoundVolume 获取音效音量
func (am *AudioManager) getSoundVolume() float64 {
	if am.settingsManager == nil {
		return DefaultHintSettings().SoundVolume
	}
	return am.settingsManager.GetSettings().SoundVolume
}

// SynthesizeTone 生成一段正弦音
// 输出为 16 位有符号小端、双声道 PCM（ebiten 音频上下文的默认格式），
// 带线性淡出以避免结尾爆音
func SynthesizeTone(sampleRate int, freq, duration float64) []byte {
	samples := int(float64(sampleRate) * duration)
	if samples <= 0 {
		return nil
	}

	buf := make([]byte, samples*4)
	for i := 0; i < samples; i++ {
		envelope := 1.0 - float64(i)/float64(samples)
		v := math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)) * envelope * 0.5
		sample := int16(v * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(sample))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(sample))
	}
	return buf
}
