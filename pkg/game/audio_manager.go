package game

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/decker502/farmvale/pkg/types"
)

// SampleRate 音频采样率
const SampleRate = 44100

// note 合成音色中的一个音符
type note struct {
	freq     float64 // Hz，0 表示休止
	duration float64 // 秒
}

// soundRecipes 每个音效由若干短音符拼成，运行时合成为 PCM
var soundRecipes = map[types.SoundID][]note{
	types.SoundHoe:     {{196, 0.05}, {147, 0.07}},
	types.SoundWater:   {{880, 0.04}, {988, 0.04}, {1047, 0.06}},
	types.SoundPlant:   {{523, 0.06}, {659, 0.08}},
	types.SoundAxe:     {{110, 0.04}, {0, 0.02}, {98, 0.08}},
	types.SoundSuccess: {{523, 0.08}, {659, 0.08}, {784, 0.14}},
	types.SoundMusic: {
		{262, 0.4}, {330, 0.4}, {392, 0.4}, {330, 0.4},
		{294, 0.4}, {349, 0.4}, {440, 0.4}, {349, 0.4},
		{262, 0.8}, {0, 0.4},
	},
}

// synthesize 把音符序列合成为 16 位小端立体声 PCM
// 每个音符带线性衰减包络，避免音符之间的爆音
func synthesize(notes []note, amplitude float64) []byte {
	total := 0
	for _, n := range notes {
		total += int(n.duration * SampleRate)
	}
	buf := make([]byte, 0, total*4)
	for _, n := range notes {
		samples := int(n.duration * SampleRate)
		for i := 0; i < samples; i++ {
			var v float64
			if n.freq > 0 {
				env := 1 - float64(i)/float64(samples)
				v = math.Sin(2*math.Pi*n.freq*float64(i)/SampleRate) * env * amplitude
			}
			s := uint16(int16(v * math.MaxInt16))
			buf = binary.LittleEndian.AppendUint16(buf, s) // 左声道
			buf = binary.LittleEndian.AppendUint16(buf, s) // 右声道
		}
	}
	return buf
}

// AudioManager 音频管理器
//
// 所有音效和背景音乐都通过它播放，音量和开关从 SettingsManager 读取。
// audioContext 为 nil 时静音运行（无头模拟、测试），PlaySound 总是返回 false。
type AudioManager struct {
	audioContext    *audio.Context
	settingsManager *SettingsManager
	soundPlayers    map[types.SoundID]*audio.Player
	pcm             map[types.SoundID][]byte
	currentMusic    *audio.Player
	logger          *log.Logger
}

// NewAudioManager 创建音频管理器
//
// 参数：
//   - ctx: ebiten 音频上下文，可为 nil（静音模式）
//   - sm: 设置管理器，可为 nil（使用默认音量）
func NewAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		audioContext:    ctx,
		settingsManager: sm,
		soundPlayers:    make(map[types.SoundID]*audio.Player),
		pcm:             make(map[types.SoundID][]byte),
		logger:          log.WithPrefix("AudioManager"),
	}
}

func (am *AudioManager) settings() *Settings {
	if am.settingsManager == nil {
		return DefaultSettings()
	}
	return am.settingsManager.Settings()
}

// samples 返回音效的 PCM 数据（首次使用时合成）
func (am *AudioManager) samples(id types.SoundID) []byte {
	if data, ok := am.pcm[id]; ok {
		return data
	}
	recipe, ok := soundRecipes[id]
	if !ok {
		return nil
	}
	data := synthesize(recipe, 0.3)
	am.pcm[id] = data
	return data
}

// PlaySound 播放一次性音效
//
// 返回：
//   - bool: 是否真正开始播放（音效关闭、静音模式或未知音效时为 false）
func (am *AudioManager) PlaySound(id types.SoundID) bool {
	if am.audioContext == nil || !am.settings().SoundEnabled {
		return false
	}

	player, ok := am.soundPlayers[id]
	if !ok {
		data := am.samples(id)
		if data == nil {
			am.logger.Warn("unknown sound", "id", id)
			return false
		}
		player = am.audioContext.NewPlayerFromBytes(data)
		am.soundPlayers[id] = player
	}

	player.SetVolume(am.settings().SoundVolume)
	if err := player.Rewind(); err != nil {
		am.logger.Warn("failed to rewind sound", "id", id, "err", err)
	}
	player.Play()
	return true
}

// PlayMusic 循环播放背景音乐，已在播放时不重复开始
func (am *AudioManager) PlayMusic() bool {
	if am.audioContext == nil || !am.settings().MusicEnabled {
		return false
	}
	if am.currentMusic != nil {
		if !am.currentMusic.IsPlaying() {
			am.currentMusic.Play()
		}
		return true
	}

	data := am.samples(types.SoundMusic)
	loop := audio.NewInfiniteLoop(bytes.NewReader(data), int64(len(data)))
	player, err := am.audioContext.NewPlayer(loop)
	if err != nil {
		am.logger.Warn("failed to create music player", "err", err)
		return false
	}
	player.SetVolume(am.settings().MusicVolume)
	player.Play()
	am.currentMusic = player
	return true
}

// StopMusic 停止背景音乐
func (am *AudioManager) StopMusic() {
	if am.currentMusic == nil {
		return
	}
	am.currentMusic.Pause()
	if err := am.currentMusic.Close(); err != nil {
		am.logger.Warn("failed to close music player", "err", err)
	}
	am.currentMusic = nil
}

// ApplySettings 把设置中的音量和开关应用到正在播放的音乐
func (am *AudioManager) ApplySettings() {
	if am.currentMusic == nil {
		return
	}
	if !am.settings().MusicEnabled {
		am.StopMusic()
		return
	}
	am.currentMusic.SetVolume(am.settings().MusicVolume)
}
