package domain

// Credit packages are sold in four fixed sizes. The prices are a business
// constant; price-per-credit is not uniform across tiers, so no formula
// replaces this table.
var packagePrices = map[int]int{
	30:  100,
	60:  180,
	120: 340,
	240: 660,
}

// packageSizes in strictly descending order for the greedy reduction.
var packageSizes = [...]int{240, 120, 60, 30}

// Package is one priced credit bundle in a decomposition.
type Package struct {
	Size  int `json:"size"`
	Price int `json:"price"`
}

// PackagePrice returns the fixed price for a package size, 0 for any size
// outside the table.
func PackagePrice(size int) int {
	return packagePrices[size]
}

// Decompose converts a total credit amount into priced packages, greedy
// largest-first. Package sizes always sum to exactly the input. A nonzero
// remainder below 30 becomes one final package priced by table lookup,
// which is 0 for off-table sizes; reports have always counted revenue this
// way, so the behavior is kept as-is.
func Decompose(total int) []Package {
	var packages []Package
	remaining := total
	for _, size := range packageSizes {
		for remaining >= size {
			packages = append(packages, Package{Size: size, Price: packagePrices[size]})
			remaining -= size
		}
	}
	if remaining > 0 {
		packages = append(packages, Package{Size: remaining, Price: packagePrices[remaining]})
	}
	return packages
}

// Revenue sums the package prices of a decomposition.
func Revenue(packages []Package) int {
	total := 0
	for _, p := range packages {
		total += p.Price
	}
	return total
}
