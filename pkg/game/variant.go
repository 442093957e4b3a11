package game

import (
	"fmt"
	"strings"

	"github.com/decker502/orbitscape/pkg/scenes"
)

// Variant 引擎变体
type Variant string

const (
	VariantHero     Variant = "hero"     // 轮播 4 个主场景
	VariantEnergy   Variant = "energy"   // 指针交互的能量传输
	VariantParallax Variant = "parallax" // 指针视差背景
	VariantReveal   Variant = "reveal"   // 外部进度驱动
)

// Variants 返回全部变体
func Variants() []Variant {
	return []Variant{VariantHero, VariantEnergy, VariantParallax, VariantReveal}
}

// ParseVariant 解析变体名称（不区分大小写）
func ParseVariant(name string) (Variant, error) {
	v := Variant(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Variants() {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown variant %q (expected hero, energy, parallax or reveal)", name)
}

// Cycles 是否使用轮播引擎
func (v Variant) Cycles() bool {
	return v == VariantHero
}

// Scenes 返回变体使用的场景集合
func (v Variant) Scenes() []scenes.Scene {
	switch v {
	case VariantEnergy:
		return []scenes.Scene{scenes.EnergyScene()}
	case VariantParallax:
		return []scenes.Scene{scenes.ParallaxScene()}
	case VariantReveal:
		return []scenes.Scene{scenes.RevealScene()}
	default:
		return scenes.HeroCatalog()
	}
}
