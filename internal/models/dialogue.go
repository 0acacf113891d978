package models

// Speaker is one of the two fixed podcast host identities.
type Speaker string

const (
	// SpeakerAlex is the curious host who asks questions.
	SpeakerAlex Speaker = "Alex"
	// SpeakerBen is the expert host who provides answers.
	SpeakerBen Speaker = "Ben"
)

// DialogueLine is one (speaker, utterance) pair extracted from a generated
// script, in original script order.
type DialogueLine struct {
	Speaker   Speaker `json:"speaker"`
	Utterance string  `json:"utterance"`
}
