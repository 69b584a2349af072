// Copyright 2025, Morgan Kendall

package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/mkendall/rvpipe/emulator"
	"github.com/mkendall/rvpipe/sim"
)

func printListing(emu *emulator.Emulator) {
	fmt.Println("Address\t\tOpcode (Hex)\tInstruction")
	fmt.Println("------------------------------------------------")
	for addr, word := range emu.Program.Codes() {
		fmt.Printf("0x%08X\t0x%08X\t%v\n", addr, uint32(word), emu.SourceAt(addr))
	}
}

func printPipeline(s *sim.Simulator) {
	fmt.Printf("\nPC: 0x%08X  (cycle %d)\n", s.PC(), s.Cycles())
	fmt.Println("================ PIPELINE STATE MAP ================")
	fmt.Println(s.IFID())
	fmt.Println(s.IDEX())
	fmt.Println(s.EXMEM())
	fmt.Println(s.MEMWB())
	fmt.Println("====================================================")
}

func printRegisters(s *sim.Simulator) {
	fmt.Println("\n--- REGISTER FILE (x0 - x31) ---")
	for i := 0; i < sim.REG_COUNT; i += 4 {
		for j := i; j < i+4; j++ {
			value, _ := s.Reg(j)
			fmt.Printf("x%02d: %08x\t", j, value)
		}
		fmt.Println()
	}
}

func viewMemory(s *sim.Simulator, addr uint32) {
	value, err := s.Mem(addr)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("Byte at %d: %d (0x%02x)\n", addr, value, value)

	if addr+4 <= sim.MEM_SIZE {
		var word uint32
		for n := range uint32(4) {
			b, _ := s.Mem(addr + n)
			word |= uint32(b) << (8 * n)
		}
		fmt.Printf("Word at %d (32-bit): %d\n", addr, int32(word))
	}
}

// prompt reads one line of input, returning false at EOF.
func prompt(in *bufio.Scanner, text string) (line string, ok bool) {
	fmt.Print(text)
	ok = in.Scan()
	line = strings.TrimSpace(in.Text())
	return
}

func promptInt(in *bufio.Scanner, text string) (value int64, ok bool) {
	line, ok := prompt(in, text)
	if !ok {
		return
	}
	var err error
	value, err = strconv.ParseInt(line, 0, 64)
	if err != nil {
		fmt.Printf("'%v' is not a number\n", line)
		ok = false
	}
	return
}

func interact(emu *emulator.Emulator, limit int) {
	in := bufio.NewScanner(os.Stdin)

	for {
		printPipeline(emu.Sim)
		printRegisters(emu.Sim)

		fmt.Println("\n--- SIMULATION CONTROLS ---")
		fmt.Println("[1] Step (Execute 1 Cycle)")
		fmt.Println("[2] Run All (Until End)")
		fmt.Println("[3] View Memory")
		fmt.Println("[4] Set Register Value")
		fmt.Println("[5] Set Memory Value")
		fmt.Println("[6] Exit")

		choice, ok := prompt(in, "Choice: ")
		if !ok {
			return
		}

		switch choice {
		case "1":
			if err := emu.Step(); err != nil {
				fmt.Println(err)
			}
		case "2":
			cycles, err := emu.Run(limit)
			if err != nil {
				fmt.Println(err)
			}
			fmt.Printf("Ran %d cycles.\n", cycles)
		case "3":
			addr, ok := promptInt(in, "Enter Memory Address: ")
			if ok {
				viewMemory(emu.Sim, uint32(addr))
			}
		case "4":
			index, ok := promptInt(in, "Enter Register Index (1-31): ")
			if !ok {
				continue
			}
			value, ok := promptInt(in, "Enter Value: ")
			if !ok {
				continue
			}
			if err := emu.Sim.SetReg(int(index), uint32(value)); err != nil {
				fmt.Println(err)
			} else {
				fmt.Println("Register Updated.")
			}
		case "5":
			addr, ok := promptInt(in, "Enter Address: ")
			if !ok {
				continue
			}
			value, ok := promptInt(in, "Enter Value (0-255): ")
			if !ok {
				continue
			}
			if err := emu.Sim.SetMemory(uint32(addr), byte(value)); err != nil {
				fmt.Println(err)
			} else {
				fmt.Println("Memory Updated.")
			}
		case "6":
			return
		}
	}
}

func main() {
	var run bool
	var limit int
	var verbose bool

	flag.BoolVar(&run, "r", false, "Run to completion instead of the interactive loop")
	flag.IntVar(&limit, "n", emulator.RUN_LIMIT, "Cycle cap for Run All")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("%v: expected exactly one assembly source file", os.Args[0])
	}

	source := flag.Arg(0)
	inf, err := os.Open(source)
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}
	defer inf.Close()

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	if err := emu.Load(inf); err != nil {
		log.Fatalf("%v: %v", source, err)
	}

	printListing(emu)

	if run {
		cycles, err := emu.Run(limit)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("\nCompleted in %d cycles.\n", cycles)
		printRegisters(emu.Sim)
		return
	}

	interact(emu, limit)
}
