package ecs

import (
	"testing"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y float64
}

type testVelocityComponent struct {
	VX, VY float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}

	if em.Count() != 2 {
		t.Errorf("Count should be 2, got %d", em.Count())
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testPositionComponent{X: 100, Y: 200})

	pos, found := GetComponent[*testPositionComponent](em, id)
	if !found {
		t.Fatal("Component should be found")
	}
	if pos.X != 100 || pos.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", pos.X, pos.Y)
	}

	if _, ok := GetComponent[*testVelocityComponent](em, id); ok {
		t.Error("Should not have velocity component")
	}
}

func TestDestroyEntityIsDeferred(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{})

	// 标记删除后组件仍可访问，直到清理
	em.DestroyEntity(id)
	if _, ok := GetComponent[*testPositionComponent](em, id); !ok {
		t.Error("Entity should still exist before RemoveMarkedEntities")
	}

	if removed := em.RemoveMarkedEntities(); removed != 1 {
		t.Errorf("RemoveMarkedEntities should remove 1, got %d", removed)
	}
	if _, ok := GetComponent[*testPositionComponent](em, id); ok {
		t.Error("Entity should be gone after RemoveMarkedEntities")
	}

	// 重复标记同一实体不会重复计数
	em.DestroyEntity(id)
	if removed := em.RemoveMarkedEntities(); removed != 0 {
		t.Errorf("Removing an already removed entity should count 0, got %d", removed)
	}
}

func TestGetEntitiesWithSorted(t *testing.T) {
	em := NewEntityManager()
	var withBoth []EntityID
	for i := 0; i < 20; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testPositionComponent{X: float64(i)})
		if i%2 == 0 {
			em.AddComponent(id, &testVelocityComponent{})
			withBoth = append(withBoth, id)
		}
	}

	all := GetEntitiesWith1[*testPositionComponent](em)
	if len(all) != 20 {
		t.Fatalf("expected 20 entities, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1] >= all[i] {
			t.Fatalf("IDs not sorted: %v", all)
		}
	}

	moving := GetEntitiesWith1[*testVelocityComponent](em)
	if len(moving) != len(withBoth) {
		t.Fatalf("expected %d entities, got %d", len(withBoth), len(moving))
	}
	for i := range moving {
		if moving[i] != withBoth[i] {
			t.Errorf("index %d: got %d, want %d", i, moving[i], withBoth[i])
		}
	}
}

func TestClear(t *testing.T) {
	em := NewEntityManager()
	em.CreateEntity()
	em.CreateEntity()
	em.Clear()
	if em.Count() != 0 {
		t.Errorf("Count after Clear should be 0, got %d", em.Count())
	}
	if id := em.CreateEntity(); id != 3 {
		t.Errorf("IDs should keep increasing after Clear, got %d", id)
	}
}
