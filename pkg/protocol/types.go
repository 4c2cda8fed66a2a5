package protocol

// LoginRequest carries the values of an authentication info response together
// with the user's credentials. Binary fields are standard base64 on the wire;
// Modulus is the armored clearsigned message as received.
type LoginRequest struct {
	Username        string `json:"Username" yaml:"Username"`
	Password        string `json:"Password" yaml:"Password"`
	Modulus         string `json:"Modulus" yaml:"Modulus"`
	ServerEphemeral string `json:"ServerEphemeral" yaml:"ServerEphemeral"`
	Salt            string `json:"Salt" yaml:"Salt"`
	Version         int    `json:"Version" yaml:"Version"`
	SRPSession      string `json:"SRPSession" yaml:"SRPSession"`
}

// LoginResponse carries the client half of the SRP exchange.
type LoginResponse struct {
	Username            string `json:"Username" yaml:"Username"`
	ClientEphemeral     string `json:"clientEphemeral" yaml:"clientEphemeral"`
	ClientProof         string `json:"clientProof" yaml:"clientProof"`
	ExpectedServerProof string `json:"expectedServerProof" yaml:"expectedServerProof"`
	SharedSession       string `json:"sharedSession" yaml:"sharedSession"`
}

// VerifierRequest asks for a fresh verifier for the given password.
type VerifierRequest struct {
	Password string `json:"Password" yaml:"Password"`
	Modulus  string `json:"Modulus" yaml:"Modulus"`
}

// VerifierResponse holds a registration-ready verifier. Salt and Verifier are
// standard base64.
type VerifierResponse struct {
	Version  int    `json:"version" yaml:"version"`
	Salt     string `json:"salt" yaml:"salt"`
	Verifier string `json:"verifier" yaml:"verifier"`
}
