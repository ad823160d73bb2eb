// Package prompt builds the messages `kevinify send` hands to an
// [llm.Provider].
//
// The system message explains the shorthand and lists the abbreviations
// that actually occur in the compressed text, so the model does not have
// to guess what "ftrs" or "w/o" stand for.
//
//	compressed := kevinify.Compress(question, nil)
//	messages, err := prompt.Build(prompt.TypeAnswer, prompt.BuildOptions{
//	    Compressed: compressed,
//	})
//	if err != nil {
//	    return err
//	}
//	stream, err := provider.ChatStream(ctx, messages, chatOpts)
//
// [TypeRestore] asks for a faithful rewrite into full English instead of an
// answer.
package prompt
