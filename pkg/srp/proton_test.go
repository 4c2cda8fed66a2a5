package srp_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fzdarsky/pmsrp/internal/modmath"
	"github.com/fzdarsky/pmsrp/internal/srptest"
	"github.com/fzdarsky/pmsrp/pkg/srp"
)

// Known answers over the signed Proton modulus. Integers are little-endian
// hex as they appear on the wire; the secrets a and b are big-endian hex.
const (
	protonUsername = "Jane.Doe-x_y"
	protonPassword = "correct horse battery staple"
	protonSalt     = "a1b2c3d4e5f60718293a"
	protonA        = "5a5a5a5a5a5a5a5a5a5a5a5a5a5a5a5a5a5a5a5a5a5a5a5a5a5a5a5a5a5a5a5a5a5a5a5a5a5a5a5a"
	protonB        = "3c3c3c3c3c3c3c3c3c3c3c3c3c3c3c3c3c3c3c3c3c3c3c3c3c3c3c3c3c3c3c3c3c3c3c3c3c3c3c3c"
)

var protonX = map[int]string{
	0: "2b907a601016cff6264e72ac2432386fcde73059a3c2cac76a94c2d696e4a72f" +
		"350047a83db0d3e7763c5966c52b7dc75a50b167584b372a61c5ff2a5ece1ae6" +
		"274ea9d514a8c5585b78053246b93871ac4744b1fa571963e36791ef1f704d8a" +
		"1bcecddec58c2045d0105664e0515ccebb462afa31d14cbe54f87971dc7b5501" +
		"86ef3b232478320d377ffee62b0e63a345180c19a6c19c693e461b99fadfddb8" +
		"e60a9f6b674e752135c4e3e00388e093daec4ac57c2c1364aad71400d6f4ef0b" +
		"da2f05a60e867512384fd436c61e443e52c7b2a9520b31e8f436192e67d1378c" +
		"dc82f603c6061eb173b0f5948acd68282350c9a2d745d169da8531d1fa490c71",
	1: "7d3e8e824fd9fc37a346bade4db9b13cc72453fe1e06d07db95da33098c0cfea" +
		"5d2c3d879a8b06c13db87ca713d36771694e67804a29ca625ee406e060193c7c" +
		"1bee6fb6ca37a7266974c0f852d74fa32a340db9b638cdf01ca717e38e0df823" +
		"9c6594cc514c439732e9ea117a21e9f7d7d60327844e0880bd09e70e016f0111" +
		"26fe5ec862290981a3438af75e98058a2ba4d2f90510848da2a11c5b356f96ab" +
		"877957c19d8b109a7ff3bcffe1f1828042e5f206cf8e7e356866f7c5f42a28f2" +
		"38862981bc7faf2cfdcec94998e4dd71cb27dd8fb8ecfffac660536d42175808" +
		"3e16877a6557f8f9b602661044090c946630ce274167bb2253b594667af8163c",
	2: "77656a69cf9a852f8881f0dd2c494344acebd74a828c28484143a92b49dca372" +
		"54fdac48e94d7126e2d18cd397496e38e758834f10e2931d4e6d43a86d309ee3" +
		"8e7551b2b1f28103813410ee6f6f9b40bde56779e772b94d8ffbdb1f16cb34fa" +
		"96bd668ea406dbaf80169c157a9059c3a40c2cddfdc74ddce57238d3dd6eaca4" +
		"4d5d12049375c13343a0494971b155b6ae7ee5b1d44121fe8d7ecbb836847ad8" +
		"49adc4a9f9aae0fc656705fcd534f271afd5a4237c7799fee38f69cc21a095ac" +
		"b18e11cd5cfad6cbb01cc9c5f78b679492dfad8e9a18a5812d030427420a239d" +
		"7aaf46888c5ceee0faf4b3af01a16b6e507756bbe388e2b8cbaf6e064093bfcd",
	3: "755957f63c37d4e141aa1e5d60366fed823acc7162fe1408c18491ab374ceb83" +
		"a4fe4cb1817324ac214fae6de496507c020d9d03c56ca177a8ebcd0768cbf82f" +
		"2092e0a378aa72f609d4ef2a0548b94fd92586a63528f231eab8d8570d93c792" +
		"f53ad665da851ddb47206ac8394387a17b8764a406c5f096bb425c4a36b8bf0c" +
		"fe736c93abbbc08cd849d6498e66ded797a82153f8c4f37722dc9ab588de61ed" +
		"4e380baf54fe727980252944785827f5dc0293526af1ec36e69a7d1a625d4182" +
		"66c2e4439b3ade02083eb4e5d7565a2afa7dfd94bf791a2782d7cdd583a2937b" +
		"373fa650ca0b298ed6153db17b268da7a29880e4b81ecc0640fda47c99e71313",
	4: "755957f63c37d4e141aa1e5d60366fed823acc7162fe1408c18491ab374ceb83" +
		"a4fe4cb1817324ac214fae6de496507c020d9d03c56ca177a8ebcd0768cbf82f" +
		"2092e0a378aa72f609d4ef2a0548b94fd92586a63528f231eab8d8570d93c792" +
		"f53ad665da851ddb47206ac8394387a17b8764a406c5f096bb425c4a36b8bf0c" +
		"fe736c93abbbc08cd849d6498e66ded797a82153f8c4f37722dc9ab588de61ed" +
		"4e380baf54fe727980252944785827f5dc0293526af1ec36e69a7d1a625d4182" +
		"66c2e4439b3ade02083eb4e5d7565a2afa7dfd94bf791a2782d7cdd583a2937b" +
		"373fa650ca0b298ed6153db17b268da7a29880e4b81ecc0640fda47c99e71313",
}

const (
	protonV = "0350db5593781c6b9b2a468286f36c2088c33c2d2c0b253977d583ca6c97581f" +
		"09fb42ae9a13aac7478617e68a4bc3d97a9cb7dad921b9fdc6f5e689e4b7c153" +
		"149845af3ca5a840cdde8b8859071ede0de2d9095b489f222e5be30956a76979" +
		"4fb5880a7bfccaa32f31df74d0dbd92cfcb06259a24db1ac3199d2c0a3f3970d" +
		"66c65bc7753ba510fa163a2029ab99832e97afdea2ea27092ee7b12cec52d964" +
		"0c2ef4b0c2a30f9d45e53cb6dea53fbecd757df361c95c19af1dcb71d329e39b" +
		"46bd6eaabd1ab52af01d6299eb71f22e2ad86d7cdef88c1c8b3c2ed3733d24b3" +
		"8c7481ef3aebc36d01db0e5ecb6c15870ed3289c69cbeff6851a83f119842e61"
	protonPubA = "1efb2140b7ddb67f62464950a908770170baffbf9a3baa3ab6f01a98da63e50f" +
		"29dfab9ce07bb94fcd5d28e66232ce6c60437763a1fb1b30382f7d7162bcc267" +
		"711632816d9aecef4114ee6cbbb2020bafb6788b8741df01ebf150426b4227a2" +
		"8e7d32afcb5ba3c1a7985e84014299e6a4069fa5d50d3ecc5b61c690d14a786b" +
		"1c55301c283323bd57097c0d7087c3527b7b040c000f55452bfcffd18872a757" +
		"a2b8d74d70df7fda66e40a3830b9e95f4566a1cea7fe51ca62b25387d178924a" +
		"e8ef0af7ac0e93c3946b2c0fc89234e78cdb931120e00a8000fa920fcc407eee" +
		"131c88d85eb16fc1a5914b7a013498cf4bd39fb445b69b9ddb4e58444d53b401"
	protonPubB = "ef4ae49e122bf2550a2c780f6d3a02f40d5d14e9e6e00545d2811e11cc05c196" +
		"6da8e1dd3006f2341c16f4219602f5e98e4097fe8135f900b552ebd7607d9b6e" +
		"259fd28f9f322a9a3d0aa4c4d801a1714c2bcf4fe714c1decce5602cff34cc2d" +
		"95a3f1d3b424c196a7eeb0f8c637452843ab31edf1213db477b201ba11730bc6" +
		"5c7f5607f775287c053c584b5c6b3b20164e9eb4662e3bf19efd750c58619d03" +
		"69025590f624280f3dc6e3deaab7e55686a844033abbdaa6848564b5e4b345e6" +
		"0ebad2db6fe1503101dd3fead2158bb0e439f10368c3292932b6a9becfb39adf" +
		"ce48bcdceb96714505f71286cd1f514101ee12d8a14d3a0d72df240e6c989990"
	protonM1 = "6541bf15bb9a10ab14a7f868c7fb5d3e77f232089bb871ffd8380767bc30d7b5" +
		"afee743727d6638043394c2b1a295f56cf48d4db606dde6859fc9d9e832054a8" +
		"3704c8fdb24a1500002d73db2c4103784475459ccb3745628d8f1106c2539850" +
		"e52ba8e3894c1766782f697dc0202ee85178cfe6bd1e87e1c45d2bf2bfb5cb9b" +
		"6194c35d85febd1e5f3684eb00540782a41f8d06179f7d9ef15eff7212965d25" +
		"8117298405580481e0ec468a14c3e611c3485f715d070c9f0f26d6d0317b052a" +
		"83b0a2354286e5e98d5da0b48c001d7fcfd5caabd14f407d23b59d952cb3c4dc" +
		"e487694f85738fa62d463a79d9d890e8b8997dc284de42d3acd7acadb5f358d3"
	protonM2 = "30777b9fe9b2cf8c4c14a6cc11f3e7c1c39098804256c99842fef2792b879b68" +
		"3a497c1a816f142134e3aa46d585137867ede32af0dc6805e3d353a39d6ff79f" +
		"2e4015d937d8cbe163f8ca213a3fb477386f8e1293263bbbd2a67002c2fb76e6" +
		"ac4bec55a13d698095e7383f1b071d532f5e3b2e82e545ebafee9c0e31483238" +
		"feed8007f081cfbf9e18fd390ed3929827ef551211c473eb9252d63921b1005b" +
		"3a346ffa8684f2d4867d54591e7d61d8139dc93f95f75340ecd1fc992fadb32a" +
		"e158404543e1c074d7dc2275650fe6bea3583ad69e54ec50feed0c9fc8ef3510" +
		"04e9f385b2dcc5299f0e2b54f6a5bc765c801306b5597aea0557c4a2fe586c48"
)

// leSecret serves a big-endian hex exponent as the full-width little-endian
// buffer the Proton suite reads from its random source.
func leSecret(t *testing.T, s string, width int) *bytes.Reader {
	t.Helper()
	buf, err := modmath.LittleEndian.Bytes(mustInt(t, s), width)
	require.NoError(t, err)
	return bytes.NewReader(buf)
}

func TestProton_DeriveX(t *testing.T) {
	g, err := srp.NewGroup(srp.Proton, srptest.Modulus(t))
	require.NoError(t, err)

	for version := 0; version <= 4; version++ {
		t.Run(fmt.Sprintf("version %d", version), func(t *testing.T) {
			kdf, err := srp.Proton.KDF(version)
			require.NoError(t, err)

			x, err := g.DeriveX(kdf, []byte(protonPassword), protonUsername, mustHex(t, protonSalt))
			require.NoError(t, err)

			got, err := modmath.LittleEndian.Bytes(x, 256)
			require.NoError(t, err)
			assertHexEqual(t, protonX[version], got)
		})
	}
}

func TestProton_Exchange(t *testing.T) {
	modulus := srptest.Modulus(t)
	salt := mustHex(t, protonSalt)

	gen, err := srp.NewVerifierGenerator([]byte(protonPassword), modulus,
		srp.WithUsername(protonUsername),
		srp.WithRandom(bytes.NewReader(salt)),
	)
	require.NoError(t, err)

	verifier, err := gen.Compute()
	require.NoError(t, err)
	assert.Equal(t, 4, verifier.Version)
	assertHexEqual(t, protonV, verifier.Verifier)

	client, err := srp.NewClient([]byte(protonPassword), modulus,
		srp.WithUsername(protonUsername),
		srp.WithRandom(leSecret(t, protonA, len(modulus))),
	)
	require.NoError(t, err)

	pubA, err := client.GetChallenge()
	require.NoError(t, err)
	assertHexEqual(t, protonPubA, pubA)

	server, err := srp.NewServer(modulus, verifier.Salt, verifier.Verifier,
		srp.WithUsername(protonUsername),
		srp.WithRandom(leSecret(t, protonB, len(modulus))),
	)
	require.NoError(t, err)

	pubB, err := server.GenerateChallenge()
	require.NoError(t, err)
	assertHexEqual(t, protonPubB, pubB)

	accepted, ok := client.ProcessChallenge(salt, pubB, 4).(srp.Accepted)
	require.True(t, ok, "challenge should be accepted")
	assertHexEqual(t, protonM1, accepted.Proofs.ClientProof)
	assertHexEqual(t, protonM2, accepted.Proofs.ExpectedServerProof)

	serverProof, err := server.VerifyProofs(pubA, accepted.Proofs.ClientProof)
	require.NoError(t, err)
	assertHexEqual(t, protonM2, serverProof)
}
