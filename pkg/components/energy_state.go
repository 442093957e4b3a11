package components

// TransferMode 能量传输方向
type TransferMode int

const (
	// TransferTransmit 轨道节点 → 指针节点
	TransferTransmit TransferMode = iota
	// TransferReceive 指针节点 → 轨道节点
	TransferReceive
)

// String 返回模式名称（用于日志）
func (m TransferMode) String() string {
	switch m {
	case TransferTransmit:
		return "transmit"
	case TransferReceive:
		return "receive"
	default:
		return "unknown"
	}
}

// Toggle 返回相反的传输方向
func (m TransferMode) Toggle() TransferMode {
	if m == TransferTransmit {
		return TransferReceive
	}
	return TransferTransmit
}

// EnergyState 两个节点之间守恒的能量分布
// 不变量：PointerEnergy + OrbiterEnergy == 1
type EnergyState struct {
	PointerEnergy float64 // 指针节点能量 [0, 1]
	OrbiterEnergy float64 // 轨道节点能量 [0, 1]
}

// Total 返回两个节点的能量和
func (e EnergyState) Total() float64 {
	return e.PointerEnergy + e.OrbiterEnergy
}
