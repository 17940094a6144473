package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testMeshComponent struct {
	X, Y float64
}

type testTransitionComponent struct {
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

	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	// 添加组件
	pos := &testMeshComponent{X: 100, Y: 200}
	em.AddComponent(id, pos)

	// 获取组件
	comp, found := em.GetComponent(id, reflect.TypeOf(&testMeshComponent{}))
	if !found {
		t.Error("Component should be found")
	}

	retrieved := comp.(*testMeshComponent)
	if retrieved.X != 100 || retrieved.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", retrieved.X, retrieved.Y)
	}
}

func TestHasComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	// 未添加组件前应该返回false
	if em.HasComponent(id, reflect.TypeOf(&testMeshComponent{})) {
		t.Error("Should not have component before adding")
	}

	// 添加组件
	em.AddComponent(id, &testMeshComponent{})

	// 添加后应该返回true
	if !em.HasComponent(id, reflect.TypeOf(&testMeshComponent{})) {
		t.Error("Should have component after adding")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testMeshComponent{})

	// 标记删除
	em.DestroyEntity(id)

	// 清理前实体仍存在
	if !em.HasComponent(id, reflect.TypeOf(&testMeshComponent{})) {
		t.Error("Entity should still exist before cleanup")
	}

	// 清理后实体消失
	em.RemoveMarkedEntities()
	if em.HasComponent(id, reflect.TypeOf(&testMeshComponent{})) {
		t.Error("Entity should be removed after cleanup")
	}
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	// 创建不同组件组合的实体
	id1 := em.CreateEntity()
	em.AddComponent(id1, &testMeshComponent{})
	em.AddComponent(id1, &testTransitionComponent{})

	id2 := em.CreateEntity()
	em.AddComponent(id2, &testMeshComponent{})

	id3 := em.CreateEntity()
	em.AddComponent(id3, &testTransitionComponent{})

	// 查询拥有 Mesh+Transition 的实体
	entities := em.GetEntitiesWith(
		reflect.TypeOf(&testMeshComponent{}),
		reflect.TypeOf(&testTransitionComponent{}),
	)

	if len(entities) != 1 {
		t.Errorf("Expected 1 entity with both components, got %d", len(entities))
	}

	if len(entities) > 0 && entities[0] != id1 {
		t.Error("Query should return only id1")
	}

	// 查询只拥有 Position 的实体
	posEntities := em.GetEntitiesWith(reflect.TypeOf(&testMeshComponent{}))
	if len(posEntities) != 2 {
		t.Errorf("Expected 2 entities with Mesh component, got %d", len(posEntities))
	}
}

func TestMultipleComponentTypes(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	// 添加多个不同类型的组件
	em.AddComponent(id, &testMeshComponent{X: 10, Y: 20})
	em.AddComponent(id, &testTransitionComponent{VX: 5, VY: 10})

	// 验证两个组件都能正确获取
	posComp, found := em.GetComponent(id, reflect.TypeOf(&testMeshComponent{}))
	if !found {
		t.Error("Mesh component should be found")
	}
	pos := posComp.(*testMeshComponent)
	if pos.X != 10 || pos.Y != 20 {
		t.Error("Mesh component data mismatch")
	}

	velComp, found := em.GetComponent(id, reflect.TypeOf(&testTransitionComponent{}))
	if !found {
		t.Error("Transition component should be found")
	}
	vel := velComp.(*testTransitionComponent)
	if vel.VX != 5 || vel.VY != 10 {
		t.Error("Transition component data mismatch")
	}
}

func TestDestroyMultipleEntities(t *testing.T) {
	em := NewEntityManager()

	// 创建多个实体
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()
	id3 := em.CreateEntity()

	em.AddComponent(id1, &testMeshComponent{})
	em.AddComponent(id2, &testMeshComponent{})
	em.AddComponent(id3, &testMeshComponent{})

	// 标记两个实体删除
	em.DestroyEntity(id1)
	em.DestroyEntity(id3)

	// 清理
	em.RemoveMarkedEntities()

	// 验证只有id2存在
	if em.HasComponent(id1, reflect.TypeOf(&testMeshComponent{})) {
		t.Error("id1 should be removed")
	}
	if !em.HasComponent(id2, reflect.TypeOf(&testMeshComponent{})) {
		t.Error("id2 should still exist")
	}
	if em.HasComponent(id3, reflect.TypeOf(&testMeshComponent{})) {
		t.Error("id3 should be removed")
	}
}

func TestQueryOrderFollowsCreation(t *testing.T) {
	em := NewEntityManager()

	ids := make([]EntityID, 0, 20)
	for i := 0; i < 20; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testMeshComponent{X: float64(i)})
		ids = append(ids, id)
	}

	// 删除中间的几个实体，剩余实体仍应保持创建顺序
	em.DestroyEntity(ids[3])
	em.DestroyEntity(ids[11])
	em.RemoveMarkedEntities()

	got := em.GetEntitiesWith(reflect.TypeOf(&testMeshComponent{}))
	if len(got) != 18 {
		t.Fatalf("Expected 18 entities, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i] <= got[i-1] {
			t.Fatalf("Query result out of order at %d: %v", i, got)
		}
	}

	// 多次查询结果完全一致
	again := em.GetEntitiesWith(reflect.TypeOf(&testMeshComponent{}))
	if !reflect.DeepEqual(got, again) {
		t.Error("Repeated queries should return identical order")
	}
}

func TestGenericHelpers(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testMeshComponent{X: 1, Y: 2})

	pos, ok := GetComponent[*testMeshComponent](em, id)
	if !ok {
		t.Fatal("Generic GetComponent should find component")
	}
	if pos.X != 1 || pos.Y != 2 {
		t.Errorf("Component data mismatch, got (%f, %f)", pos.X, pos.Y)
	}

	if _, ok := GetComponent[*testTransitionComponent](em, id); ok {
		t.Error("Missing component should return ok=false")
	}

	AddComponent(em, id, &testTransitionComponent{VX: 3})
	if got := GetEntitiesWith1[*testTransitionComponent](em); len(got) != 1 || got[0] != id {
		t.Errorf("GetEntitiesWith1 = %v, want [%d]", got, id)
	}
	if tc, ok := GetComponent[*testTransitionComponent](em, id); !ok || tc.VX != 3 {
		t.Errorf("GetComponent = %v, %v", tc, ok)
	}
}

func TestExistsAndEntityCount(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if !em.Exists(id1) || !em.Exists(id2) {
		t.Error("Created entities should exist")
	}
	if em.EntityCount() != 2 {
		t.Errorf("EntityCount = %d, want 2", em.EntityCount())
	}

	em.DestroyEntity(id1)
	em.RemoveMarkedEntities()

	if em.Exists(id1) {
		t.Error("Destroyed entity should not exist")
	}
	if em.EntityCount() != 1 {
		t.Errorf("EntityCount = %d, want 1", em.EntityCount())
	}

	// 重复删除同一个实体不会出错
	em.DestroyEntity(id1)
	em.RemoveMarkedEntities()
	if em.EntityCount() != 1 {
		t.Errorf("EntityCount after double destroy = %d, want 1", em.EntityCount())
	}
}
