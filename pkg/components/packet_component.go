package components

// PacketComponent 沿光束飞行的能量包（纯视觉标记）
//
// 由能量传输系统在其私有实体管理器中创建，Progress >= 1 时销毁。
// 能量包不携带守恒量，只表示传输正在进行。
type PacketComponent struct {
	Progress      float64      // 飞行进度 [0, 1]
	Speed         float64      // 进度/秒
	LateralOffset float64      // 侧向摆动幅度（逻辑像素）
	Phase         float64      // 摆动相位（弧度）
	Direction     TransferMode // 飞行方向（= 创建时的传输模式）
}
