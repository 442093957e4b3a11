package render

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/decker502/orbitscape/pkg/components"
)

// TestGGCanvasFillCircle 软件光栅化基本绘制
func TestGGCanvasFillCircle(t *testing.T) {
	c := NewGGCanvas(40, 40, 1)
	defer c.Close()

	c.Fill(color.NRGBA{A: 255})
	c.FillCircle(20, 20, 10, color.NRGBA{R: 255, A: 255})
	if err := c.Err(); err != nil {
		t.Fatalf("绘制错误: %v", err)
	}

	r, g, _, _ := c.Image().At(20, 20).RGBA()
	if r>>8 < 250 || g>>8 > 5 {
		t.Errorf("圆心像素: got r=%d g=%d, want red", r>>8, g>>8)
	}
	r, _, _, _ = c.Image().At(2, 2).RGBA()
	if r>>8 > 5 {
		t.Errorf("圆外像素应为黑色, got r=%d", r>>8)
	}
}

// TestGGCanvasDensity 像素比换算逻辑尺寸
func TestGGCanvasDensity(t *testing.T) {
	c := NewGGCanvas(200, 100, 2)
	defer c.Close()

	w, h := c.Size()
	if w != 100 || h != 50 {
		t.Errorf("Size: got %vx%v, want 100x50", w, h)
	}

	c.Fill(color.NRGBA{A: 255})
	c.FillRect(50, 25, 10, 10, color.NRGBA{G: 255, A: 255})
	// 逻辑 (55, 30) → 像素 (110, 60)
	_, g, _, _ := c.Image().At(110, 60).RGBA()
	if g>>8 < 250 {
		t.Errorf("像素比换算错误: g=%d", g>>8)
	}
}

// TestGGCanvasLayerAlpha 图层按不透明度合成
func TestGGCanvasLayerAlpha(t *testing.T) {
	c := NewGGCanvas(20, 20, 1)
	defer c.Close()

	c.Fill(color.NRGBA{A: 255})
	c.DrawLayer(components.BlendDescriptor{Alpha: 0.5, Scale: 1, ShiftX: 0.001}, func(layer Canvas) {
		layer.FillRect(0, 0, 20, 20, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	})

	r, _, _, _ := c.Image().At(10, 10).RGBA()
	if v := int(r >> 8); v < 110 || v > 145 {
		t.Errorf("半透明合成: got %d, want ≈128", v)
	}
}

// TestGGCanvasSavePNG 导出 PNG
func TestGGCanvasSavePNG(t *testing.T) {
	c := NewGGCanvas(8, 8, 1)
	defer c.Close()
	c.Fill(color.NRGBA{B: 255, A: 255})

	if err := c.SavePNG(filepath.Join(t.TempDir(), "out.png")); err != nil {
		t.Errorf("SavePNG: %v", err)
	}
}
