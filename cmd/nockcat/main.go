// nockcat reads and writes nouns in the binary wire format (spec §4.2) and
// runs the Nock evaluator against them, the way ccat/ctac read and write ADE
// AtomContainers.
package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/spf13/cobra"

	"github.com/PeterReid/hoplight/codec"
	"github.com/PeterReid/hoplight/nock"
	"github.com/PeterReid/hoplight/noun"
)

var (
	flagVerbose     bool
	flagOutput      string
	flagCacheSize   int
	flagEntropySeed int64
	flagUseSeed     bool
)

func main() {
	root := &cobra.Command{
		Use:   "nockcat",
		Short: "Read, write, and evaluate Nock nouns",
	}
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")

	decodeCmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "Decode a binary noun to its bracket text form",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDecode,
	}
	decodeCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "write output to file instead of stdout")

	encodeCmd := &cobra.Command{
		Use:   "encode [file]",
		Short: "Encode a bracket text noun to the binary wire format",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEncode,
	}
	encodeCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "write output to file instead of stdout")

	evalCmd := &cobra.Command{
		Use:   "eval <subject> <formula>",
		Short: "Evaluate *[subject formula], both given in bracket text form",
		Args:  cobra.ExactArgs(2),
		RunE:  runEval,
	}
	evalCmd.Flags().IntVar(&flagCacheSize, "cache-size", 4096, "memo cache size, per table")
	evalCmd.Flags().Int64Var(&flagEntropySeed, "entropy-seed", 0, "seed opcode 15 deterministically instead of using crypto/rand")
	evalCmd.PreRun = func(cmd *cobra.Command, args []string) {
		flagUseSeed = cmd.Flags().Changed("entropy-seed")
	}

	root.AddCommand(decodeCmd, encodeCmd, evalCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "nockcat:", err)
		os.Exit(1)
	}
}

func openOutput() (io.Writer, func() error, error) {
	if flagOutput == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.OpenFile(flagOutput, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 0 {
		return ioutil.ReadAll(os.Stdin)
	}
	return ioutil.ReadFile(args[0])
}

func runDecode(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		nock.Log.SetOutput(os.Stderr)
	}
	buf, err := readInput(args)
	if err != nil {
		return err
	}
	n, err := codec.Decode(buf)
	if err != nil {
		return err
	}
	out, closeFn, err := openOutput()
	if err != nil {
		return err
	}
	defer closeFn()
	fmt.Fprintln(out, n.String())
	return nil
}

func runEncode(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		nock.Log.SetOutput(os.Stderr)
	}
	buf, err := readInput(args)
	if err != nil {
		return err
	}
	n, err := noun.ParseText(string(buf))
	if err != nil {
		return err
	}
	out, closeFn, err := openOutput()
	if err != nil {
		return err
	}
	defer closeFn()
	_, err = out.Write(codec.Encode(n))
	return err
}

func runEval(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		nock.Log.SetOutput(os.Stderr)
	}
	subject, err := noun.ParseText(args[0])
	if err != nil {
		return fmt.Errorf("subject: %w", err)
	}
	formula, err := noun.ParseText(args[1])
	if err != nil {
		return fmt.Errorf("formula: %w", err)
	}

	opts := []nock.Option{nock.WithCacheSize(flagCacheSize)}
	if flagUseSeed {
		opts = append(opts, nock.WithEntropySource(nock.NewDeterministicEntropy(uint64(flagEntropySeed))))
	}
	e, err := nock.New(opts...)
	if err != nil {
		return err
	}

	result, err := e.Eval(subject, formula)
	if err != nil {
		return err
	}
	fmt.Println(result.String())
	return nil
}
