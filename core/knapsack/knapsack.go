/*
Package knapsack implements the Merkle-Hellman knapsack public-key cryptosystem.

The private key is a superincreasing sequence w_1..w_n together with a modulus q
greater than the sum of the sequence and a multiplier r coprime to q. The public key
is the sequence b_i = w_i * r mod q. A message is encrypted by summing the public
terms selected by its bits, and decrypted by multiplying the ciphertext by r^-1 mod q
and greedily decomposing the result over the private sequence.

WARNING: the scheme is broken by lattice reduction and must not be used to protect data.
*/
package knapsack
