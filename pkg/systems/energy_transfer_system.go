package systems

import (
	"log"
	"math"

	"github.com/decker502/orbitscape/pkg/components"
	"github.com/decker502/orbitscape/pkg/config"
	"github.com/decker502/orbitscape/pkg/ecs"
	"github.com/decker502/orbitscape/pkg/utils"
)

// EnergyTransferSystem 两节点守恒能量传输模拟
//
// 在轨道节点与指针节点之间搬运一个总量恒为 1 的资源：
//   - transmit 模式：轨道节点 → 指针节点
//   - receive 模式：指针节点 → 轨道节点
//
// 每帧的可传输量为 min(rate·dt, 源能量, 1 - 目标能量)，因此流量不会把源抽成负数，
// 也不会让目标超过 1，目标接近饱和时流量自然减小。
//
// 传输进行时按固定速率生成能量包（纯视觉），能量包实体存放在系统私有的
// EntityManager 中，进度到达 1 后销毁。
type EnergyTransferSystem struct {
	entityManager *ecs.EntityManager
	config        config.EnergyConfig
	rng           *utils.SeededRandom

	state components.EnergyState
	mode  components.TransferMode
	burst float64

	spawnAccumulator float64 // 未满 1 的能量包生成计数
	lastTransferable float64 // 最近一帧实际传输量
	corrections      int     // 守恒校正次数（正常运行应为 0）
}

// NewEnergyTransferSystem 创建能量传输系统
//
// 参数：
//   - cfg: 能量传输配置
//   - seed: 能量包随机外观的种子
func NewEnergyTransferSystem(cfg config.EnergyConfig, seed int64) *EnergyTransferSystem {
	s := &EnergyTransferSystem{
		entityManager: ecs.NewEntityManager(),
		config:        cfg,
		rng:           utils.NewSeededRandom(seed),
		mode:          components.TransferTransmit,
	}
	s.SetOrbiterEnergy(cfg.InitialOrbiter)
	return s
}

// SetOrbiterEnergy 设置能量分布（指针节点取余量），输入会被限制到 [0, 1]
func (s *EnergyTransferSystem) SetOrbiterEnergy(orbiter float64) {
	orbiter = utils.Clamp01(orbiter)
	s.state = components.EnergyState{
		OrbiterEnergy: orbiter,
		PointerEnergy: 1 - orbiter,
	}
}

// SetMode 直接设置传输方向（不触发爆发效果）
func (s *EnergyTransferSystem) SetMode(mode components.TransferMode) {
	s.mode = mode
}

// Toggle 切换传输方向，并触发一次爆发效果
// 由点击/触摸交互调用
func (s *EnergyTransferSystem) Toggle() {
	s.mode = s.mode.Toggle()
	s.burst = 1
	log.Printf("[EnergyTransferSystem] Mode toggled to %s (pointer=%.3f orbiter=%.3f)",
		s.mode, s.state.PointerEnergy, s.state.OrbiterEnergy)
}

// Update 推进一帧模拟
//
// 顺序：传输 → 守恒校正 → 爆发衰减 → 推进已有能量包 → 生成新能量包。
// deltaTime 为零、负数或 NaN 的帧直接跳过，下一帧自然恢复。
func (s *EnergyTransferSystem) Update(deltaTime float64) {
	if !(deltaTime > 0) {
		return
	}

	transferable := s.transfer(s.config.TransferRate * deltaTime)
	s.lastTransferable = transferable

	s.restoreInvariant()

	s.burst *= s.config.BurstDecay
	if s.burst < 1e-4 {
		s.burst = 0
	}

	s.advancePackets(deltaTime)

	if transferable > s.config.SpawnThreshold {
		s.spawnAccumulator += s.config.PacketsPerSecond * deltaTime
		for s.spawnAccumulator >= 1 {
			s.spawnPacket()
			s.spawnAccumulator--
		}
	} else {
		s.spawnAccumulator = 0
	}
}

// transfer 按当前模式搬运能量，返回实际传输量
func (s *EnergyTransferSystem) transfer(flowAmount float64) float64 {
	source, target := &s.state.OrbiterEnergy, &s.state.PointerEnergy
	if s.mode == components.TransferReceive {
		source, target = &s.state.PointerEnergy, &s.state.OrbiterEnergy
	}

	transferable := math.Min(flowAmount, math.Min(*source, 1-*target))
	if transferable <= 0 || math.IsNaN(transferable) {
		return 0
	}

	*source -= transferable
	*target = math.Min(*target+transferable, 1)
	return transferable
}

// restoreInvariant 防御性守恒校正
// 浮点漂移超过 epsilon 时以指针节点为准重算轨道节点能量
func (s *EnergyTransferSystem) restoreInvariant() {
	if math.Abs(s.state.Total()-1) <= s.config.Epsilon {
		return
	}
	s.state.PointerEnergy = utils.Clamp01(s.state.PointerEnergy)
	s.state.OrbiterEnergy = 1 - s.state.PointerEnergy
	s.corrections++
}

// advancePackets 推进所有能量包，到达终点的标记销毁
func (s *EnergyTransferSystem) advancePackets(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.PacketComponent](s.entityManager) {
		packet, ok := ecs.GetComponent[*components.PacketComponent](s.entityManager, id)
		if !ok {
			continue
		}
		packet.Progress += packet.Speed * deltaTime
		if packet.Progress >= 1 {
			packet.Progress = 1
			s.entityManager.DestroyEntity(id)
		}
	}
	s.entityManager.RemoveMarkedEntities()
}

// spawnPacket 创建一个能量包（随机外观，方向 = 当前模式）
func (s *EnergyTransferSystem) spawnPacket() {
	id := s.entityManager.CreateEntity()
	s.entityManager.AddComponent(id, &components.PacketComponent{
		Progress:      0,
		Speed:         s.rng.Range(s.config.PacketSpeedMin, s.config.PacketSpeedMax),
		LateralOffset: s.rng.Range(-1, 1),
		Phase:         s.rng.Range(0, 2*math.Pi),
		Direction:     s.mode,
	})
}

// State 返回当前能量分布
func (s *EnergyTransferSystem) State() components.EnergyState {
	return s.state
}

// Mode 返回当前传输方向
func (s *EnergyTransferSystem) Mode() components.TransferMode {
	return s.mode
}

// Burst 返回当前爆发强度 [0, 1]
func (s *EnergyTransferSystem) Burst() float64 {
	return s.burst
}

// LastTransferable 返回最近一帧实际传输量
func (s *EnergyTransferSystem) LastTransferable() float64 {
	return s.lastTransferable
}

// IsFlowing 最近一帧是否存在有效流量
func (s *EnergyTransferSystem) IsFlowing() bool {
	return s.lastTransferable > s.config.SpawnThreshold
}

// Corrections 返回守恒校正次数
func (s *EnergyTransferSystem) Corrections() int {
	return s.corrections
}

// PacketCount 返回飞行中的能量包数量
func (s *EnergyTransferSystem) PacketCount() int {
	return s.entityManager.Count()
}

// Packets 返回飞行中能量包的快照（按创建顺序）
func (s *EnergyTransferSystem) Packets() []components.PacketComponent {
	ids := ecs.GetEntitiesWith1[*components.PacketComponent](s.entityManager)
	out := make([]components.PacketComponent, 0, len(ids))
	for _, id := range ids {
		if packet, ok := ecs.GetComponent[*components.PacketComponent](s.entityManager, id); ok {
			out = append(out, *packet)
		}
	}
	return out
}
