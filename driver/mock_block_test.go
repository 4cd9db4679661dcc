// Code in this file is hand-written in the shape mockgen would generate for
// //go:generate mockgen -destination=mock_block_test.go github.com/flowrt/flowrt/block Block
// (kept hand-written since this module never invokes the Go toolchain).
package driver_test

import (
	"context"
	"os"
	"reflect"

	"github.com/golang/mock/gomock"

	"github.com/flowrt/flowrt/block"
	"github.com/flowrt/flowrt/datatype"
	"github.com/flowrt/flowrt/port"
)

// MockBlock is a mock of the block.Block interface.
type MockBlock struct {
	ctrl     *gomock.Controller
	recorder *MockBlockMockRecorder
}

// MockBlockMockRecorder is the mock recorder for MockBlock.
type MockBlockMockRecorder struct {
	mock *MockBlock
}

// NewMockBlock creates a new mock instance.
func NewMockBlock(ctrl *gomock.Controller) *MockBlock {
	mock := &MockBlock{ctrl: ctrl}
	mock.recorder = &MockBlockMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockBlock) EXPECT() *MockBlockMockRecorder {
	return m.recorder
}

func (m *MockBlock) Name() string {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Name")
	return ret[0].(string)
}

func (mr *MockBlockMockRecorder) Name() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Name", reflect.TypeOf((*MockBlock)(nil).Name))
}

func (m *MockBlock) Signatures() []block.Signature {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Signatures")
	return ret[0].([]block.Signature)
}

func (mr *MockBlockMockRecorder) Signatures() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Signatures", reflect.TypeOf((*MockBlock)(nil).Signatures))
}

func (m *MockBlock) Differentiate(inputTypes []datatype.DataType) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Differentiate", inputTypes)
	err, _ := ret[0].(error)
	return err
}

func (mr *MockBlockMockRecorder) Differentiate(inputTypes any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Differentiate", reflect.TypeOf((*MockBlock)(nil).Differentiate), inputTypes)
}

func (m *MockBlock) Rate() float64 {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Rate")
	return ret[0].(float64)
}

func (mr *MockBlockMockRecorder) Rate() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Rate", reflect.TypeOf((*MockBlock)(nil).Rate))
}

func (m *MockBlock) Initialize() error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Initialize")
	err, _ := ret[0].(error)
	return err
}

func (mr *MockBlockMockRecorder) Initialize() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Initialize", reflect.TypeOf((*MockBlock)(nil).Initialize))
}

func (m *MockBlock) RunOnce() (block.Outcome, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RunOnce")
	err, _ := ret[1].(error)
	return ret[0].(block.Outcome), err
}

func (mr *MockBlockMockRecorder) RunOnce() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RunOnce", reflect.TypeOf((*MockBlock)(nil).RunOnce))
}

func (m *MockBlock) Run(ctx context.Context) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Run", ctx)
	err, _ := ret[0].(error)
	return err
}

func (mr *MockBlockMockRecorder) Run(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Run", reflect.TypeOf((*MockBlock)(nil).Run), ctx)
}

func (m *MockBlock) Cleanup() error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Cleanup")
	err, _ := ret[0].(error)
	return err
}

func (mr *MockBlockMockRecorder) Cleanup() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Cleanup", reflect.TypeOf((*MockBlock)(nil).Cleanup))
}

func (m *MockBlock) Files() []*os.File {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Files")
	files, _ := ret[0].([]*os.File)
	return files
}

func (mr *MockBlockMockRecorder) Files() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Files", reflect.TypeOf((*MockBlock)(nil).Files))
}

func (m *MockBlock) InputPorts() []*port.InputPort {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "InputPorts")
	ports, _ := ret[0].([]*port.InputPort)
	return ports
}

func (mr *MockBlockMockRecorder) InputPorts() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "InputPorts", reflect.TypeOf((*MockBlock)(nil).InputPorts))
}

func (m *MockBlock) OutputPorts() []*port.OutputPort {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "OutputPorts")
	ports, _ := ret[0].([]*port.OutputPort)
	return ports
}

func (mr *MockBlockMockRecorder) OutputPorts() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "OutputPorts", reflect.TypeOf((*MockBlock)(nil).OutputPorts))
}
