package render

import (
	"image"

	"github.com/gdamore/tcell/v2"
)

// halfBlock 上半块字符：前景色画上半个像素，背景色画下半个像素
const halfBlock = '▀'

// TermPresenter 把软件光栅化的图像输出到终端
//
// 每个字符单元显示两个纵向像素，终端单元大约是 1:2 的长宽比，
// 这样得到的像素接近正方形。
type TermPresenter struct {
	screen tcell.Screen
}

// NewTermPresenter 创建终端输出器
func NewTermPresenter(screen tcell.Screen) *TermPresenter {
	return &TermPresenter{screen: screen}
}

// PixelSize 返回终端当前尺寸对应的像素网格大小
func (p *TermPresenter) PixelSize() (int, int) {
	cols, rows := p.screen.Size()
	return cols, rows * 2
}

// Present 将图像写入终端单元格并刷新
// 超出终端范围的部分被裁掉，不足的部分保持黑色
func (p *TermPresenter) Present(img image.Image) {
	cols, rows := p.screen.Size()
	bounds := img.Bounds()

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := sampleColor(img, bounds, col, row*2)
			bottom := sampleColor(img, bounds, col, row*2+1)
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			p.screen.SetContent(col, row, halfBlock, nil, style)
		}
	}
	p.screen.Show()
}

func sampleColor(img image.Image, bounds image.Rectangle, x, y int) tcell.Color {
	x += bounds.Min.X
	y += bounds.Min.Y
	if x >= bounds.Max.X || y >= bounds.Max.Y {
		return tcell.NewRGBColor(0, 0, 0)
	}
	// RGBA 返回预乘值，相当于合成到黑色背景上
	r, g, b, _ := img.At(x, y).RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}
