package bridge

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/hostref/table"
)

// ModuleName is the import namespace guests use for handle operations.
const ModuleName = "hostref"

// Bridge adapts a handle table to the guest-facing "hostref" host module.
// The methods mirror the exported functions one to one and can be called
// directly from host code as well.
type Bridge struct {
	table *table.Table
}

// New creates a bridge over tbl.
func New(tbl *table.Table) *Bridge {
	return &Bridge{table: tbl}
}

// Table returns the underlying handle table.
func (b *Bridge) Table() *table.Table {
	return b.table
}

// IsNull reports (as 0/1) whether h is the null handle. An unknown handle
// also reports 1: the guest holds nothing through it.
func (b *Bridge) IsNull(h uint32) uint32 {
	ref, ok := b.table.Get(table.Handle(h))
	if !ok || ref.IsNull() {
		return 1
	}
	return 0
}

// Same reports (as 0/1) whether two handles reach the same referent.
// Null compares identical to null; an unknown handle never compares
// identical to anything.
func (b *Bridge) Same(h1, h2 uint32) uint32 {
	r1, ok1 := b.table.Get(table.Handle(h1))
	r2, ok2 := b.table.Get(table.Handle(h2))
	if !ok1 || !ok2 {
		return 0
	}
	if r1.Same(r2) {
		return 1
	}
	return 0
}

// Clone inserts the referent of h under a fresh handle. Both handles share
// the referent afterwards. The null handle clones to the null handle; an
// unknown handle yields the null handle.
func (b *Bridge) Clone(h uint32) uint32 {
	ref, ok := b.table.Get(table.Handle(h))
	if !ok {
		return uint32(table.NullHandle)
	}
	clone, err := b.table.Insert(ref)
	if err != nil {
		Logger().Debug("clone rejected", zap.Uint32("handle", h), zap.Error(err))
		return uint32(table.NullHandle)
	}
	return uint32(clone)
}

// Drop frees the handle and returns 1 on success. The referent stays alive
// while other handles or host code still reach it.
func (b *Bridge) Drop(h uint32) uint32 {
	if _, ok := b.table.Remove(table.Handle(h)); !ok {
		Logger().Debug("drop rejected", zap.Uint32("handle", h))
		return 0
	}
	return 1
}

// HasHostInfo reports (as 0/1) whether the referent carries host info.
func (b *Bridge) HasHostInfo(h uint32) uint32 {
	ref, ok := b.table.Get(table.Handle(h))
	if !ok || ref.IsNull() {
		return 0
	}
	info, err := ref.HostInfo()
	if err != nil || info == nil {
		return 0
	}
	return 1
}

// DropHostInfo clears the referent's host info and returns 1 on success.
// Guests may shed host metadata but never read or write it; its shape
// belongs to the embedder.
func (b *Bridge) DropHostInfo(h uint32) uint32 {
	ref, ok := b.table.Get(table.Handle(h))
	if !ok || ref.IsNull() {
		return 0
	}
	if err := ref.SetHostInfo(nil); err != nil {
		Logger().Debug("drop-host-info rejected", zap.Uint32("handle", h), zap.Error(err))
		return 0
	}
	return 1
}

// Count returns the number of live handles.
func (b *Bridge) Count() uint32 {
	return uint32(b.table.Len())
}

// Register instantiates the "hostref" host module into rt. The returned
// module remains registered until closed or the runtime shuts down.
func (b *Bridge) Register(ctx context.Context, rt wazero.Runtime) (api.Module, error) {
	i32 := api.ValueTypeI32
	one := []api.ValueType{i32}
	two := []api.ValueType{i32, i32}

	builder := rt.NewHostModuleBuilder(ModuleName)

	builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, _ api.Module, stack []uint64) {
			stack[0] = uint64(b.IsNull(uint32(stack[0])))
		}), one, one).
		Export("is-null")

	builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, _ api.Module, stack []uint64) {
			stack[0] = uint64(b.Same(uint32(stack[0]), uint32(stack[1])))
		}), two, one).
		Export("same")

	builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, _ api.Module, stack []uint64) {
			stack[0] = uint64(b.Clone(uint32(stack[0])))
		}), one, one).
		Export("clone")

	builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, _ api.Module, stack []uint64) {
			stack[0] = uint64(b.Drop(uint32(stack[0])))
		}), one, one).
		Export("drop")

	builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, _ api.Module, stack []uint64) {
			stack[0] = uint64(b.HasHostInfo(uint32(stack[0])))
		}), one, one).
		Export("has-host-info")

	builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, _ api.Module, stack []uint64) {
			stack[0] = uint64(b.DropHostInfo(uint32(stack[0])))
		}), one, one).
		Export("drop-host-info")

	builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, _ api.Module, stack []uint64) {
			stack[0] = uint64(b.Count())
		}), nil, one).
		Export("count")

	mod, err := builder.Instantiate(ctx)
	if err != nil {
		return nil, err
	}

	Logger().Debug("host module registered", zap.String("module", ModuleName))
	return mod, nil
}
