// Package selectors derives a candidate ABI from deployed EVM bytecode with
// no ground truth: it statically scans the dispatch prelude for 4-byte
// selector comparisons and, optionally, PUSH32 constants feeding LOG
// instructions as candidate event topics.
//
// Everything this package produces is heuristic. Selector collisions are
// possible, inferred metadata is a guess, and event detection in particular
// is noisy; callers are expected to corroborate candidates against a
// registry or signature database before trusting anything beyond the bare
// selector.
package selectors

import (
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/tranvictor/abiscope/abi"
)

// opcodes the dispatch scan cares about
const (
	opSub       byte = 0x03
	opEq        byte = 0x14
	opCallvalue byte = 0x34
	opJumpi     byte = 0x57
	opPush1     byte = 0x60
	opPush4     byte = 0x63
	opPush32    byte = 0x7f
	opLog1      byte = 0xa1
	opLog4      byte = 0xa4
)

// dispatchWindow is how many instructions after a PUSH4 a comparison and a
// conditional jump must appear in for the constant to count as a selector.
const dispatchWindow = 5

// logWindow is how many instructions after a PUSH32 a LOG instruction must
// appear in for the constant to count as a candidate event topic.
const logWindow = 12

type instruction struct {
	op      byte
	operand []byte
}

// Extract scans deployed bytecode and returns the raw candidate ABI in scan
// order: one function entry per selector found in the dispatch table, then
// one event entry per candidate topic. The candidates carry heuristic
// metadata (a payability guess from the CALLVALUE guard, empty input lists);
// it is the caller's responsibility to filter that metadata out unless the
// user opted into it.
func Extract(code []byte) abi.ABI {
	instrs := decode(code)
	result := abi.ABI{}

	payableGuess := !hasCallvalueGuard(instrs)
	seen := map[string]bool{}
	for i, ins := range instrs {
		switch {
		case ins.op == opPush4:
			selector := hexutil.Encode(ins.operand)
			if selector == "0xffffffff" || seen[selector] {
				// PUSH4 0xffffffff is the ERC165 sentinel, not a dispatch entry
				continue
			}
			if !isDispatchComparison(instrs, i) {
				continue
			}
			seen[selector] = true
			entry := &abi.Entry{
				Type:     abi.Function,
				Selector: selector,
				Inputs:   []abi.Param{},
				Payable:  payableGuess,
			}
			if payableGuess {
				entry.StateMutability = "payable"
			} else {
				entry.StateMutability = "nonpayable"
			}
			result = append(result, entry)
		case ins.op == opPush32:
			topic := hexutil.Encode(ins.operand)
			if seen[topic] {
				continue
			}
			if !feedsLog(instrs, i) {
				continue
			}
			seen[topic] = true
			result = append(result, &abi.Entry{
				Type: abi.Event,
				Hash: topic,
			})
		}
	}
	return result
}

// decode walks the bytecode once, skipping over PUSH operands so constants
// never get misread as opcodes.
func decode(code []byte) []instruction {
	instrs := []instruction{}
	for i := 0; i < len(code); {
		op := code[i]
		if op >= opPush1 && op <= opPush32 {
			size := int(op-opPush1) + 1
			end := i + 1 + size
			if end > len(code) {
				// truncated push at the tail, constructor data most likely
				break
			}
			instrs = append(instrs, instruction{op: op, operand: code[i+1 : end]})
			i = end
			continue
		}
		instrs = append(instrs, instruction{op: op})
		i++
	}
	return instrs
}

// isDispatchComparison reports whether the PUSH4 at index i is followed
// closely by an EQ (or SUB, for solc's inverted form) and a JUMPI, the shape
// every dispatch-table entry compiles to.
func isDispatchComparison(instrs []instruction, i int) bool {
	compared := false
	for j := i + 1; j < len(instrs) && j <= i+dispatchWindow; j++ {
		switch instrs[j].op {
		case opEq, opSub:
			compared = true
		case opJumpi:
			return compared
		}
	}
	return false
}

// feedsLog reports whether the PUSH32 at index i is followed closely by a
// LOG1..LOG4, i.e. the constant plausibly is an event topic rather than a
// bitmask or storage slot.
func feedsLog(instrs []instruction, i int) bool {
	for j := i + 1; j < len(instrs) && j <= i+logWindow; j++ {
		if instrs[j].op >= opLog1 && instrs[j].op <= opLog4 {
			return true
		}
	}
	return false
}

// hasCallvalueGuard reports whether the prelude rejects nonzero msg.value,
// the pattern solc emits for contracts with no payable functions. Only the
// first few instructions are considered; a CALLVALUE deeper in the body is
// a payable function reading its value.
func hasCallvalueGuard(instrs []instruction) bool {
	limit := 16
	if len(instrs) < limit {
		limit = len(instrs)
	}
	for i := 0; i < limit; i++ {
		if instrs[i].op == opCallvalue {
			return true
		}
	}
	return false
}
