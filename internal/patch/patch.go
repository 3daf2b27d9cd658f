// Package patch edits OpenCore style property lists with a file of expression
// instructions.
//
// Each instruction is an expr expression evaluated against an environment
// exposing set, append and delete on dot-delimited paths, the [Helpers]
// constructors and the machine [Variables]:
//
//	set("PlatformInfo.Generic.SystemSerialNumber", vars.SerialNumber)
//	append("Kernel.Add", helpers.Kext("Kexts/Lilu.kext"))
//	delete("Misc.Tools.0")
package patch

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/rs/zerolog/log"
	"howett.net/plist"
)

// Variables are the machine specific values available as "vars".
type Variables struct {
	Debug        bool
	Product      string
	MLB          string
	ROM          []byte // raw bytes, encoded as <data> in the output
	SerialNumber string
	UUID         string
}

// Instruction is a single expression and the line it was read from.
type Instruction struct {
	Line   int
	Source string
}

// InstructionError reports an instruction that failed to compile or run.
type InstructionError struct {
	Instruction Instruction
	Phase       string
	Err         error
}

func (ie *InstructionError) Error() string {
	return fmt.Sprintf("%s error on line %d (%s): %v", ie.Phase, ie.Instruction.Line, ie.Instruction.Source, ie.Err)
}

func (ie *InstructionError) Unwrap() error {
	return ie.Err
}

// ReadInstructions returns the instructions in r. Blank lines and lines
// starting with "//" are skipped; expr cannot compile a comment on its own.
func ReadInstructions(r io.Reader) ([]Instruction, error) {
	var instructions []Instruction

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++

		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "//") {
			continue
		}

		instructions = append(instructions, Instruction{Line: line, Source: text})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}

	return instructions, nil
}

// Env returns the expression environment editing e.
func Env(e *Evaluator, vars Variables) map[string]any {
	return map[string]any{
		"set":     e.Set,
		"append":  e.Append,
		"delete":  e.Delete,
		"helpers": Helpers{},
		"vars":    vars,
	}
}

// Apply compiles every instruction and, when all of them compile, runs them in
// order against data.
func Apply(data map[string]any, instructions []Instruction, vars Variables) error {
	env := Env(NewEvaluator(data), vars)

	programs := make([]*vm.Program, 0, len(instructions))
	for _, ins := range instructions {
		program, err := expr.Compile(ins.Source, expr.Env(env))
		if err != nil {
			return &InstructionError{Instruction: ins, Phase: "compile", Err: err}
		}
		programs = append(programs, program)
	}

	for i, program := range programs {
		ins := instructions[i]

		log.Info().Int("line", ins.Line).Str("instruction", ins.Source).Msg("applying")

		if _, err := expr.Run(program, env); err != nil {
			return &InstructionError{Instruction: ins, Phase: "runtime", Err: err}
		}
	}

	return nil
}

// Decode reads a property list whose root is a dictionary.
func Decode(r io.ReadSeeker) (map[string]any, error) {
	data := map[string]any{}
	if err := plist.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return data, nil
}

// Encode writes data as an XML property list indented with four spaces, as
// plutil does.
func Encode(w io.Writer, data map[string]any) error {
	bw := bufio.NewWriter(w)

	encoder := plist.NewEncoder(bw)
	encoder.Indent("    ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("unable to encode plist: %w", err)
	}

	return bw.Flush()
}
