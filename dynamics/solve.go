package dynamics

import (
	"gonum.org/v1/gonum/mat"

	"go.viam.com/rigidbodydynamics/rbderrors"
)

// DynamicsSolveInto solves the constrained-forward-dynamics KKT system:
//
//	[ M  Kᵀ ] [ v̇ ] = [ τ − c ]
//	[ K  0  ] [ λ  ]   [ −k    ]
//
// using result.M/C/K/KBias (already filled by MassMatrixInto/
// DynamicsBiasInto/ConstraintJacobianAndBiasInto) and the supplied
// applied-torque vector tau, writing v̇ and λ into result.Vdot/Lambda.
//
// The constrained branch forms the Schur complement A = K M⁻¹ Kᵀ and
// b = K M⁻¹ τ' + k via mat.Cholesky's SolveTo/SolveVecTo rather than the
// more literal L⁻¹/L⁻ᵀ factor reuse (Y = K L⁻ᵀ, z = L⁻¹τ'): both forms
// are the same Schur complement algebraically, and gonum's mat.Cholesky
// exposes the factorization only through whole-system solves, not a
// public triangular-solve primitive for L itself (see DESIGN.md).
func DynamicsSolveInto(result *Result, tau []float64) error {
	n := result.NV
	if len(tau) != n {
		return rbderrors.DimensionMismatch("dynamics.DynamicsSolveInto", n, len(tau))
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(result.M); !ok {
		return rbderrors.Singular("mass matrix")
	}

	tauPrime := make([]float64, n)
	for i := range tauPrime {
		tauPrime[i] = tau[i] - result.C[i]
	}

	if result.NLambda == 0 {
		var vdot mat.VecDense
		if err := chol.SolveVecTo(&vdot, mat.NewVecDense(n, tauPrime)); err != nil {
			return rbderrors.Singular("mass matrix")
		}
		copy(result.Vdot, vdot.RawVector().Data)
		return nil
	}

	nLambda := result.NLambda
	var kt mat.Dense
	kt.CloneFrom(result.K.T())

	var x mat.Dense // M^-1 K^T
	if err := chol.SolveTo(&x, &kt); err != nil {
		return rbderrors.Singular("mass matrix")
	}
	var a mat.Dense // K M^-1 K^T
	a.Mul(result.K, &x)

	var y mat.VecDense // M^-1 tau'
	if err := chol.SolveVecTo(&y, mat.NewVecDense(n, tauPrime)); err != nil {
		return rbderrors.Singular("mass matrix")
	}
	var ky mat.VecDense
	ky.MulVec(result.K, &y)

	b := make([]float64, nLambda)
	for i := 0; i < nLambda; i++ {
		b[i] = ky.AtVec(i) + result.KBias[i]
	}

	aSym := mat.NewSymDense(nLambda, nil)
	for i := 0; i < nLambda; i++ {
		for j := i; j < nLambda; j++ {
			aSym.SetSym(i, j, a.At(i, j))
		}
	}
	var aChol mat.Cholesky
	if ok := aChol.Factorize(aSym); !ok {
		return rbderrors.Singular("constraint Schur complement")
	}
	var lambda mat.VecDense
	if err := aChol.SolveVecTo(&lambda, mat.NewVecDense(nLambda, b)); err != nil {
		return rbderrors.Singular("constraint Schur complement")
	}
	copy(result.Lambda, lambda.RawVector().Data)

	var ktLambda mat.VecDense
	ktLambda.MulVec(&kt, &lambda)
	for i := 0; i < n; i++ {
		tauPrime[i] -= ktLambda.AtVec(i)
	}

	var vdot mat.VecDense
	if err := chol.SolveVecTo(&vdot, mat.NewVecDense(n, tauPrime)); err != nil {
		return rbderrors.Singular("mass matrix")
	}
	copy(result.Vdot, vdot.RawVector().Data)
	return nil
}
