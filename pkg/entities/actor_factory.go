package entities

import (
	"github.com/decker502/birthday/pkg/components"
	"github.com/decker502/birthday/pkg/config"
	"github.com/decker502/birthday/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
)

// NewPlayer 创建玩家角色
//
// 碰撞盒取缩放后的贴图尺寸，并开启世界边界碰撞。
func NewPlayer(em *ecs.EntityManager, img *ebiten.Image, x, y, scale, speed float64) ecs.EntityID {
	id := NewSprite(em, img, x, y, config.DepthPlayer)
	Display(em, id).SetScale(scale)

	w, h := spriteSize(img)
	ecs.AddComponent(em, id, &components.VelocityComponent{})
	ecs.AddComponent(em, id, &components.BodyComponent{
		Width:              w * scale,
		Height:             h * scale,
		CollideWorldBounds: true,
	})
	ecs.AddComponent(em, id, &components.PlayerComponent{Speed: speed})
	return id
}

// NewHeart 创建可收集的爱心
func NewHeart(em *ecs.EntityManager, img *ebiten.Image, index int, x, y, scale float64) ecs.EntityID {
	id := NewSprite(em, img, x, y, config.DepthWorld)
	Display(em, id).SetScale(scale)

	w, h := spriteSize(img)
	ecs.AddComponent(em, id, &components.BodyComponent{Width: w * scale, Height: h * scale})
	ecs.AddComponent(em, id, &components.CollectibleComponent{Index: index})
	return id
}

// NewNPC 创建可对话角色
// 碰撞盒是以 TalkRadius 为半边长的正方形，玩家进入即为可对话范围
func NewNPC(em *ecs.EntityManager, img *ebiten.Image, cfg config.NPCConfig, x, y, scale float64) ecs.EntityID {
	id := NewSprite(em, img, x, y, config.DepthWorld)
	Display(em, id).SetScale(scale)

	ecs.AddComponent(em, id, &components.BodyComponent{
		Width:  cfg.TalkRadius * 2,
		Height: cfg.TalkRadius * 2,
	})
	ecs.AddComponent(em, id, &components.NPCComponent{
		Name:       cfg.Name,
		Lines:      append([]string(nil), cfg.Lines...),
		TalkRadius: cfg.TalkRadius,
	})
	ecs.AddComponent(em, id, &components.ClickableComponent{IsEnabled: true, Swallow: true})
	return id
}

// NextLine 返回 NPC 本次要说的台词并前进，最后一句重复
func NextLine(npc *components.NPCComponent) string {
	if len(npc.Lines) == 0 {
		return ""
	}
	last := len(npc.Lines) - 1
	i := min(npc.NextLine, last)
	npc.NextLine = min(i+1, last)
	return npc.Lines[i]
}

func spriteSize(img *ebiten.Image) (float64, float64) {
	if img == nil {
		return 0, 0
	}
	b := img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}
