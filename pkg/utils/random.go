package utils

import "math/rand"

// SeededRandom 可复现的伪随机序列
//
// 场景渲染必须是时间的纯函数：同一种子每次生成相同的序列，
// 因此星点/节点布局可以在启动时按种子生成一次，之后作为只读数据使用。
type SeededRandom struct {
	rng *rand.Rand
}

// NewSeededRandom 使用给定种子创建伪随机序列
func NewSeededRandom(seed int64) *SeededRandom {
	return &SeededRandom{rng: rand.New(rand.NewSource(seed))}
}

// Float 返回 [0, 1) 内的下一个值
func (r *SeededRandom) Float() float64 {
	return r.rng.Float64()
}

// Range 返回 [lo, hi) 内的下一个值
func (r *SeededRandom) Range(lo, hi float64) float64 {
	return lo + (hi-lo)*r.rng.Float64()
}

// Sequence 生成 n 个 [0, 1) 内的值
func (r *SeededRandom) Sequence(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = r.rng.Float64()
	}
	return out
}
