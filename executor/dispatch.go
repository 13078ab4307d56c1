package executor

import (
	"fmt"

	"github.com/gogpu/imgcc/compiler"
)

// Dispatch type-switches each op in ops to the matching Executor method,
// in order. Adapters implementing Run typically call Dispatch once they
// have resolved prog.Entry's function range from prog.FlatOps() — see
// executor/wgpuadapter for the canonical use.
func Dispatch(e Executor, ops []compiler.Op) error {
	for _, op := range ops {
		var err error
		switch v := op.(type) {
		case compiler.StackPushOp:
			err = e.StackPush(v)
		case compiler.StackPopOp:
			err = e.StackPop(v)
		case compiler.DoneOp:
			err = e.Done(v)
		case compiler.PushOperandOp:
			err = e.PushOperand(v)
		case compiler.DrawIntoOp:
			err = e.DrawInto(v)
		case compiler.CopyOp:
			err = e.Copy(v)
		case compiler.UninitOp:
			err = e.Uninit(v)
		case compiler.WriteIntoOp:
			err = e.WriteInto(v)
		case compiler.CallOp:
			err = e.Call(v)
		case compiler.InputOp:
			err = e.Input(v)
		case compiler.OutputOp:
			err = e.Output(v)
		case compiler.RenderOp:
			err = e.Render(v)
		default:
			err = fmt.Errorf("%w: %T", ErrUnsupportedOp, op)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
