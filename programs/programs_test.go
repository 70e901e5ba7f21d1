package programs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/acc8/cpu"
	"github.com/ezrec/acc8/emulator"
	"github.com/ezrec/acc8/io"
)

func TestNames(t *testing.T) {
	assert := assert.New(t)

	assert.Equal([]string{"countdown", "divide", "multiply", "sum"}, Names())

	_, err := Source("missing")
	assert.ErrorIs(err, ErrProgramMissing)
}

func runProgram(t *testing.T, name string, input ...int) (emu *emulator.Emulator, output []int) {
	source, err := Source(name)
	if err != nil {
		t.Fatal(err)
		return
	}

	prog, err := cpu.Assemble(source, cpu.DATA_BASE_DEFAULT)
	if err != nil {
		t.Fatal(err)
		return
	}

	sink := &io.Queue{}
	emu = emulator.NewEmulator()
	emu.Input = io.NewQueue(input...)
	emu.Output = sink
	emu.Load(prog)

	for range 10000 {
		var done bool
		done, err = emu.Tick()
		if err != nil {
			t.Fatal(err)
			return
		}
		if done {
			output = sink.Data
			return
		}
	}

	t.Fatalf("%v: did not halt", name)
	return
}

func TestPrograms(t *testing.T) {
	assert := assert.New(t)

	emu, output := runProgram(t, "sum")
	assert.Nil(output)
	assert.Equal(uint8(8), emu.Memory[202])

	table := [](struct {
		name   string
		input  []int
		output []int
	}){
		{"divide", []int{17, 5}, []int{3}},
		{"divide", []int{20, 5}, []int{4}},
		{"divide", []int{4, 5}, []int{0}},
		{"countdown", []int{3}, []int{3, 2, 1}},
		{"countdown", []int{0}, nil},
		{"multiply", []int{6, 7}, []int{42}},
		{"multiply", []int{20, 20}, []int{144}},
		{"multiply", []int{9, 0}, []int{0}},
	}

	for _, entry := range table {
		_, output := runProgram(t, entry.name, entry.input...)
		assert.Equal(entry.output, output, "%v %v", entry.name, entry.input)
	}
}
