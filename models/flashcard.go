package models

// Flashcard represents a single word/translation pair.
// CreatedAt is epoch milliseconds and only used for default ordering.
type Flashcard struct {
	ID            string `json:"id"`
	Word          string `json:"word"`
	Transcription string `json:"transcription"`
	Translation   string `json:"translation"`
	Category      string `json:"category,omitempty"`
	ImageURL      string `json:"imageUrl,omitempty"`
	CreatedAt     int64  `json:"createdAt"`
}

// FlashcardFormData is what a form submits when creating or editing a card.
type FlashcardFormData struct {
	Word          string `json:"word" yaml:"word" validate:"notblank"`
	Transcription string `json:"transcription" yaml:"transcription"`
	Translation   string `json:"translation" yaml:"translation" validate:"notblank"`
	Category      string `json:"category" yaml:"category"`
	ImageURL      string `json:"imageUrl" yaml:"imageUrl" validate:"optionalurl"`
}

// FlashcardPatch carries a partial update. Nil fields are left untouched; a
// pointer to "" clears an optional field.
type FlashcardPatch struct {
	Word          *string `json:"word,omitempty" validate:"omitnil,notblank"`
	Transcription *string `json:"transcription,omitempty"`
	Translation   *string `json:"translation,omitempty" validate:"omitnil,notblank"`
	Category      *string `json:"category,omitempty"`
	ImageURL      *string `json:"imageUrl,omitempty" validate:"omitnil,optionalurl"`
}

// Patch returns a patch that replaces every editable field with the form values.
func (f FlashcardFormData) Patch() FlashcardPatch {
	return FlashcardPatch{
		Word:          &f.Word,
		Transcription: &f.Transcription,
		Translation:   &f.Translation,
		Category:      &f.Category,
		ImageURL:      &f.ImageURL,
	}
}

// FormData returns the editable fields of the card, e.g. to prefill an edit form.
func (c Flashcard) FormData() FlashcardFormData {
	return FlashcardFormData{
		Word:          c.Word,
		Transcription: c.Transcription,
		Translation:   c.Translation,
		Category:      c.Category,
		ImageURL:      c.ImageURL,
	}
}

// Empty reports whether the patch changes nothing.
func (p FlashcardPatch) Empty() bool {
	return p.Word == nil && p.Transcription == nil && p.Translation == nil &&
		p.Category == nil && p.ImageURL == nil
}

// Apply merges the patch over card. ID and CreatedAt are never touched.
func (p FlashcardPatch) Apply(card Flashcard) Flashcard {
	if p.Word != nil {
		card.Word = *p.Word
	}
	if p.Transcription != nil {
		card.Transcription = *p.Transcription
	}
	if p.Translation != nil {
		card.Translation = *p.Translation
	}
	if p.Category != nil {
		card.Category = *p.Category
	}
	if p.ImageURL != nil {
		card.ImageURL = *p.ImageURL
	}
	return card
}
