package types

// SoundID 音效资源ID
// 农场系统只负责触发（一次性播放），具体播放由音频管理器完成
type SoundID string

const (
	SoundHoe     SoundID = "SOUND_HOE"
	SoundWater   SoundID = "SOUND_WATER"
	SoundPlant   SoundID = "SOUND_PLANT"
	SoundAxe     SoundID = "SOUND_AXE"
	SoundSuccess SoundID = "SOUND_SUCCESS"
	SoundMusic   SoundID = "SOUND_MUSIC"
)
