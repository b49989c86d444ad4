package systems

import (
	"testing"

	"github.com/decker502/farmvale/pkg/components"
	"github.com/decker502/farmvale/pkg/ecs"
	"github.com/decker502/farmvale/pkg/types"
)

// TestAdvanceCrop 测试单次生长的纯函数
func TestAdvanceCrop(t *testing.T) {
	tests := []struct {
		name      string
		crop      components.CropComponent
		watered   bool
		wantAge   float64
		wantRipe  bool
		wantSprou bool
	}{
		{"dry", components.CropComponent{GrowSpeed: 0.5, MaxAge: 3}, false, 0, false, false},
		{"first growth", components.CropComponent{GrowSpeed: 0.5, MaxAge: 3}, true, 0.5, false, true},
		{"mid growth", components.CropComponent{Age: 1, GrowSpeed: 0.5, MaxAge: 3}, true, 1.5, false, false},
		{"clamped", components.CropComponent{Age: 2.8, GrowSpeed: 0.5, MaxAge: 3}, true, 3, true, false},
		{"already ripe", components.CropComponent{Age: 3, GrowSpeed: 0.5, MaxAge: 3, Harvestable: true}, true, 3, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			crop := tt.crop
			change := advanceCrop(&crop, tt.watered)
			if crop.Age != tt.wantAge {
				t.Errorf("Age = %v, want %v", crop.Age, tt.wantAge)
			}
			if crop.Harvestable != tt.wantRipe {
				t.Errorf("Harvestable = %v, want %v", crop.Harvestable, tt.wantRipe)
			}
			if change.Sprouted != tt.wantSprou {
				t.Errorf("Sprouted = %v, want %v", change.Sprouted, tt.wantSprou)
			}
		})
	}
}

// TestCropGrowthSystemUpdate 测试系统每帧只生长一次，且与 deltaTime 无关
func TestCropGrowthSystemUpdate(t *testing.T) {
	soil, em, _, _ := newTestSoil(t, 2, 2)
	soil.Till(cellCenter(0, 0))
	soil.Water(cellCenter(0, 0))
	soil.Plant(cellCenter(0, 0), types.PlantCorn)
	id := soil.Plants()[0]

	growth := NewCropGrowthSystem(soil)
	growth.Update(5.0)

	crop, _ := ecs.GetComponent[*components.CropComponent](em, id)
	if crop.Age != testCrops[types.PlantCorn].GrowSpeed {
		t.Errorf("Age = %v, want one step of %v", crop.Age, testCrops[types.PlantCorn].GrowSpeed)
	}
	render, _ := ecs.GetComponent[*components.RenderComponent](em, id)
	if render.Frame != crop.Stage() {
		t.Errorf("Frame = %d, want stage %d", render.Frame, crop.Stage())
	}
}
