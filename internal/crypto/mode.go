package crypto

// Mode captures the direction of a run. The two variants agree on chunk
// geometry: an Encrypter reads ChunkSize-byte plaintext chunks and writes
// WireChunkSize-byte blocks; a Decrypter is the mirror image. Both
// directions must use the same sizes or chunk boundaries drift.
type Mode interface {
	// TransformChunk seals or opens one content chunk. Opening fails
	// with ErrMalformed on undecryptable input; sealing never fails
	// short of an exhausted entropy source.
	TransformChunk(chunk []byte) ([]byte, error)

	// TransformName encodes or decodes one path segment.
	TransformName(segment string) (string, error)

	// ReadSize is the number of bytes to read per source chunk.
	ReadSize() int

	// WriteSize is the largest number of bytes written per chunk.
	WriteSize() int

	// OutputDirName is the default destination directory name.
	OutputDirName() string

	// Verb is "Encrypting" or "Decrypting", for operator-facing lines.
	Verb() string
}

// Encrypter seals chunks and encodes names under a fixed password.
type Encrypter struct {
	password []byte
}

// NewEncrypter creates the encrypting mode.
func NewEncrypter(password []byte) *Encrypter {
	return &Encrypter{password: password}
}

func (e *Encrypter) TransformChunk(chunk []byte) ([]byte, error) {
	return Seal(chunk, e.password)
}

func (e *Encrypter) TransformName(segment string) (string, error) {
	return EncodeSegment(segment, e.password)
}

func (e *Encrypter) ReadSize() int  { return ChunkSize }
func (e *Encrypter) WriteSize() int { return WireChunkSize }

func (e *Encrypter) OutputDirName() string { return "ENCRYPTED_OUTPUT" }
func (e *Encrypter) Verb() string          { return "Encrypting" }

// Decrypter opens chunks and decodes names under a fixed password.
type Decrypter struct {
	password []byte
}

// NewDecrypter creates the decrypting mode.
func NewDecrypter(password []byte) *Decrypter {
	return &Decrypter{password: password}
}

func (d *Decrypter) TransformChunk(chunk []byte) ([]byte, error) {
	return Open(chunk, d.password)
}

func (d *Decrypter) TransformName(segment string) (string, error) {
	return DecodeSegment(segment, d.password)
}

func (d *Decrypter) ReadSize() int  { return WireChunkSize }
func (d *Decrypter) WriteSize() int { return ChunkSize }

func (d *Decrypter) OutputDirName() string { return "DECRYPTED_OUTPUT" }
func (d *Decrypter) Verb() string          { return "Decrypting" }
