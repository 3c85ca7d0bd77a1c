package proof

import (
	"bytes"
	"fmt"
	"math/big"
	"sync"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
)

// Circuit names accepted by a default prover.
const (
	CircuitTransfer = "transfer"
	CircuitMint     = "mint"
)

// Prover compiles circuits, runs setup, and generates proofs. It is safe
// for concurrent use.
type Prover struct {
	mu       sync.RWMutex
	circuits map[string]*compiled
	curve    ecc.ID
}

type compiled struct {
	cs constraint.ConstraintSystem
	pk groth16.ProvingKey
	vk groth16.VerifyingKey
}

// Result is a generated proof in a form suitable for on-chain submission:
// the Groth16 points as a flat array plus the public inputs as hex words.
type Result struct {
	Circuit      string     `json:"circuit"`
	RawProof     []*big.Int `json:"rawProof"`
	PublicInputs []string   `json:"publicInputs"`
	Constraints  int        `json:"constraints"`
}

// NewProver creates a prover on BN254, the curve Ethereum precompiles
// verify.
func NewProver() *Prover {
	return &Prover{
		circuits: make(map[string]*compiled),
		curve:    ecc.BN254,
	}
}

// NewLedgerProver creates a prover with the transfer and mint circuits
// compiled and set up.
func NewLedgerProver() (*Prover, error) {
	p := NewProver()
	if err := p.Register(CircuitTransfer, &TransferCircuit{}); err != nil {
		return nil, err
	}
	if err := p.Register(CircuitMint, &MintCircuit{}); err != nil {
		return nil, err
	}
	return p, nil
}

// Register compiles a circuit to R1CS and runs the trusted setup. Setup
// here is single-party; a production deployment substitutes ceremony keys.
func (p *Prover) Register(name string, circuit frontend.Circuit) error {
	cs, err := frontend.Compile(p.curve.ScalarField(), r1cs.NewBuilder, circuit)
	if err != nil {
		return fmt.Errorf("proof: compiling circuit %q: %w", name, err)
	}
	pk, vk, err := groth16.Setup(cs)
	if err != nil {
		return fmt.Errorf("proof: setup for circuit %q: %w", name, err)
	}

	p.mu.Lock()
	p.circuits[name] = &compiled{cs: cs, pk: pk, vk: vk}
	p.mu.Unlock()
	return nil
}

// Circuits returns the registered circuit names.
func (p *Prover) Circuits() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	names := make([]string, 0, len(p.circuits))
	for name := range p.circuits {
		names = append(names, name)
	}
	return names
}

func (p *Prover) circuit(name string) (*compiled, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	cc, ok := p.circuits[name]
	if !ok {
		return nil, fmt.Errorf("proof: circuit %q not registered", name)
	}
	return cc, nil
}

// Prove generates a proof for an assignment of the named circuit.
func (p *Prover) Prove(name string, assignment frontend.Circuit) (*Result, error) {
	cc, err := p.circuit(name)
	if err != nil {
		return nil, err
	}

	w, err := frontend.NewWitness(assignment, p.curve.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("proof: building witness: %w", err)
	}
	prf, err := groth16.Prove(cc.cs, cc.pk, w)
	if err != nil {
		return nil, fmt.Errorf("proof: proving %q: %w", name, err)
	}
	public, err := w.Public()
	if err != nil {
		return nil, fmt.Errorf("proof: extracting public witness: %w", err)
	}

	return encodeResult(name, cc, prf, public)
}

// ProveAndVerify generates a proof and verifies it against the circuit's
// verifying key. A verification failure means the assignment violates the
// circuit's constraints.
func (p *Prover) ProveAndVerify(name string, assignment frontend.Circuit) error {
	cc, err := p.circuit(name)
	if err != nil {
		return err
	}

	w, err := frontend.NewWitness(assignment, p.curve.ScalarField())
	if err != nil {
		return fmt.Errorf("proof: building witness: %w", err)
	}
	prf, err := groth16.Prove(cc.cs, cc.pk, w)
	if err != nil {
		return fmt.Errorf("proof: proving %q: %w", name, err)
	}
	public, err := w.Public()
	if err != nil {
		return fmt.Errorf("proof: extracting public witness: %w", err)
	}
	return groth16.Verify(prf, cc.vk, public)
}

// ExportVerifier renders the Solidity verifier contract for a circuit.
func (p *Prover) ExportVerifier(name string) (string, error) {
	cc, err := p.circuit(name)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := cc.vk.ExportSolidity(&buf); err != nil {
		return "", fmt.Errorf("proof: exporting verifier for %q: %w", name, err)
	}
	return buf.String(), nil
}

// encodeResult flattens a proof and its public inputs for submission.
func encodeResult(name string, cc *compiled, prf groth16.Proof, public witness.Witness) (*Result, error) {
	result := &Result{
		Circuit:     name,
		Constraints: cc.cs.GetNbConstraints(),
	}

	pubBytes, err := public.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("proof: marshaling public witness: %w", err)
	}
	// Witness layout: 12-byte header, then 32-byte field elements.
	const headerSize = 12
	const elementSize = 32
	if len(pubBytes) > headerSize {
		data := pubBytes[headerSize:]
		for i := 0; i+elementSize <= len(data); i += elementSize {
			val := new(big.Int).SetBytes(data[i : i+elementSize])
			result.PublicInputs = append(result.PublicInputs, fmt.Sprintf("0x%064x", val))
		}
	}

	var proofBuf bytes.Buffer
	if _, err := prf.WriteRawTo(&proofBuf); err != nil {
		return nil, fmt.Errorf("proof: marshaling proof: %w", err)
	}
	proofBytes := proofBuf.Bytes()

	// Uncompressed layout: A (G1, 64 bytes), B (G2, 128 bytes), C (G1, 64
	// bytes). The flat order matches the Ethereum pairing precompile.
	if len(proofBytes) < 256 {
		return nil, fmt.Errorf("proof: unexpected proof encoding of %d bytes", len(proofBytes))
	}
	result.RawProof = make([]*big.Int, 8)
	for i := 0; i < 8; i++ {
		result.RawProof[i] = new(big.Int).SetBytes(proofBytes[i*32 : (i+1)*32])
	}

	return result, nil
}

// Job is one proof request for batch proving.
type Job struct {
	ID         int
	Circuit    string
	Assignment frontend.Circuit
}

// JobResult pairs a job id with its proof or error.
type JobResult struct {
	ID    int
	Proof *Result
	Err   error
}

// ProveBatch generates proofs for a set of jobs with bounded concurrency.
// Results are returned in job order; ids are carried through untouched and
// may be arbitrary.
func (p *Prover) ProveBatch(jobs []Job, workers int) []JobResult {
	if workers <= 0 {
		workers = 4
	}

	type indexed struct {
		pos int
		res JobResult
	}

	results := make([]JobResult, len(jobs))
	posCh := make(chan int, len(jobs))
	resCh := make(chan indexed, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for pos := range posCh {
				job := jobs[pos]
				proof, err := p.Prove(job.Circuit, job.Assignment)
				resCh <- indexed{pos: pos, res: JobResult{ID: job.ID, Proof: proof, Err: err}}
			}
		}()
	}

	for pos := range jobs {
		posCh <- pos
	}
	close(posCh)

	go func() {
		wg.Wait()
		close(resCh)
	}()

	for r := range resCh {
		results[r.pos] = r.res
	}
	return results
}
