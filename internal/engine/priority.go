package engine

// selectEnabled — чистая функция приоритезации: среди установленных
// механизмов берём максимальный вес и включаем все установленные с этим
// весом; остальные (установленные или нет) выключаем. При равных весах
// по умолчанию активны все установленные механизмы сразу.
func selectEnabled(installed [mechanismCount]bool, weights [mechanismCount]float64) [mechanismCount]bool {
	var max float64
	found := false
	for m := Mechanism(0); m < mechanismCount; m++ {
		if !installed[m] {
			continue
		}
		if !found || weights[m] > max {
			max = weights[m]
			found = true
		}
	}
	var enabled [mechanismCount]bool
	if !found {
		return enabled
	}
	for m := Mechanism(0); m < mechanismCount; m++ {
		enabled[m] = installed[m] && weights[m] == max
	}
	return enabled
}
